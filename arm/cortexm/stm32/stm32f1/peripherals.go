package stm32f1

import "fmt"

// Bus selects one of the peripheral clock enable registers.
type Bus uint8

const (
	BusAHB  Bus = 0
	BusAPB1 Bus = 1
	BusAPB2 Bus = 2
)

func (b Bus) String() string {
	switch b {
	case BusAHB:
		return "AHB"
	case BusAPB1:
		return "APB1"
	case BusAPB2:
		return "APB2"
	}
	return fmt.Sprintf("Bus(%d)", uint8(b))
}

// AHBENR bits.
const (
	AHB_DMA1     uint8 = 0
	AHB_DMA2     uint8 = 1
	AHB_SRAM     uint8 = 2
	AHB_FLITF    uint8 = 4
	AHB_CRC      uint8 = 6
	AHB_OTGFS    uint8 = 12
	AHB_ETHMAC   uint8 = 14
	AHB_ETHMACTX uint8 = 15
	AHB_ETHMACRX uint8 = 16
)

// APB2ENR bits.
const (
	APB2_AFIO   uint8 = 0
	APB2_GPIOA  uint8 = 2
	APB2_GPIOB  uint8 = 3
	APB2_GPIOC  uint8 = 4
	APB2_ADC1   uint8 = 9
	APB2_ADC2   uint8 = 10
	APB2_TIM1   uint8 = 11
	APB2_SPI1   uint8 = 12
	APB2_USART1 uint8 = 14
)

// APB1ENR bits.
const (
	APB1_TIM2   uint8 = 0
	APB1_TIM3   uint8 = 1
	APB1_TIM4   uint8 = 2
	APB1_TIM5   uint8 = 3
	APB1_TIM6   uint8 = 4
	APB1_TIM7   uint8 = 5
	APB1_WWDG   uint8 = 11
	APB1_SPI2   uint8 = 14
	APB1_SPI3   uint8 = 15
	APB1_USART2 uint8 = 17
	APB1_USART3 uint8 = 18
	APB1_UART4  uint8 = 19
	APB1_UART5  uint8 = 20
	APB1_I2C1   uint8 = 21
	APB1_I2C2   uint8 = 22
	APB1_CAN1   uint8 = 25
	APB1_CAN2   uint8 = 26
	APB1_BKP    uint8 = 27
	APB1_PWR    uint8 = 28
	APB1_DAC    uint8 = 29
)

// Peripheral is one clock gate.
type Peripheral struct {
	Bus Bus
	Bit uint8
}

// Peripherals maps peripheral names to their clock gates.
var Peripherals = map[string]Peripheral{
	"DMA1":     {BusAHB, AHB_DMA1},
	"DMA2":     {BusAHB, AHB_DMA2},
	"SRAM":     {BusAHB, AHB_SRAM},
	"FLITF":    {BusAHB, AHB_FLITF},
	"CRC":      {BusAHB, AHB_CRC},
	"OTGFS":    {BusAHB, AHB_OTGFS},
	"ETHMAC":   {BusAHB, AHB_ETHMAC},
	"ETHMACTX": {BusAHB, AHB_ETHMACTX},
	"ETHMACRX": {BusAHB, AHB_ETHMACRX},
	"AFIO":     {BusAPB2, APB2_AFIO},
	"GPIOA":    {BusAPB2, APB2_GPIOA},
	"GPIOB":    {BusAPB2, APB2_GPIOB},
	"GPIOC":    {BusAPB2, APB2_GPIOC},
	"ADC1":     {BusAPB2, APB2_ADC1},
	"ADC2":     {BusAPB2, APB2_ADC2},
	"TIM1":     {BusAPB2, APB2_TIM1},
	"SPI1":     {BusAPB2, APB2_SPI1},
	"USART1":   {BusAPB2, APB2_USART1},
	"TIM2":     {BusAPB1, APB1_TIM2},
	"TIM3":     {BusAPB1, APB1_TIM3},
	"TIM4":     {BusAPB1, APB1_TIM4},
	"TIM5":     {BusAPB1, APB1_TIM5},
	"TIM6":     {BusAPB1, APB1_TIM6},
	"TIM7":     {BusAPB1, APB1_TIM7},
	"WWDG":     {BusAPB1, APB1_WWDG},
	"SPI2":     {BusAPB1, APB1_SPI2},
	"SPI3":     {BusAPB1, APB1_SPI3},
	"USART2":   {BusAPB1, APB1_USART2},
	"USART3":   {BusAPB1, APB1_USART3},
	"UART4":    {BusAPB1, APB1_UART4},
	"UART5":    {BusAPB1, APB1_UART5},
	"I2C1":     {BusAPB1, APB1_I2C1},
	"I2C2":     {BusAPB1, APB1_I2C2},
	"CAN1":     {BusAPB1, APB1_CAN1},
	"CAN2":     {BusAPB1, APB1_CAN2},
	"BKP":      {BusAPB1, APB1_BKP},
	"PWR":      {BusAPB1, APB1_PWR},
	"DAC":      {BusAPB1, APB1_DAC},
}
