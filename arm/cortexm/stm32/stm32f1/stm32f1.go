// Package stm32f1 holds the STM32F1 specific parts of the HAL: the device
// interrupt table, the reset and clock control block and the peripheral
// clock gates.
package stm32f1

// PriorityBits is the number of NVIC priority bits STM32F1 parts implement.
const PriorityBits = 4
