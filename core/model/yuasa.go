package model

// YuasaNPW45Model names the battery the built-in table was measured on.
const YuasaNPW45Model = "YUASA NPW45-12"

var yuasaNPW45Points = []CalibrationPoint{
	{Voltage: 12.90, SOC: 100},
	{Voltage: 12.80, SOC: 95},
	{Voltage: 12.70, SOC: 90},
	{Voltage: 12.60, SOC: 85},
	{Voltage: 12.50, SOC: 75},
	{Voltage: 12.40, SOC: 60},
	{Voltage: 12.30, SOC: 50},
	{Voltage: 12.20, SOC: 40},
	{Voltage: 12.10, SOC: 30},
	{Voltage: 12.00, SOC: 20},
	{Voltage: 11.90, SOC: 10},
	{Voltage: 11.80, SOC: 0},
}

// YuasaNPW45 returns the open-circuit voltage curve of a 12 V YUASA NPW45
// lead-acid battery.
func YuasaNPW45() CalibrationTable {
	return NewCalibrationTable(YuasaNPW45Model, yuasaNPW45Points)
}
