package proto

import "fmt"

// Function selects the board subsystem a frame is addressed to.
type Function byte

// Function codes.
const (
	FuncSys      Function = 0
	FuncLED      Function = 1
	FuncBuzzer   Function = 2
	FuncMotor    Function = 3
	FuncPWMServo Function = 4
	FuncBusServo Function = 5
	FuncKey      Function = 6
	FuncIMU      Function = 7
	FuncGamepad  Function = 8
	FuncSBUS     Function = 9
	FuncOLED     Function = 10
	FuncRGB      Function = 11
	// FuncNone stands for every unknown or reserved code.
	FuncNone Function = 12
)

var functionNames = [...]string{
	FuncSys:      "sys",
	FuncLED:      "led",
	FuncBuzzer:   "buzzer",
	FuncMotor:    "motor",
	FuncPWMServo: "pwm-servo",
	FuncBusServo: "bus-servo",
	FuncKey:      "key",
	FuncIMU:      "imu",
	FuncGamepad:  "gamepad",
	FuncSBUS:     "sbus",
	FuncOLED:     "oled",
	FuncRGB:      "rgb",
	FuncNone:     "none",
}

// FunctionFromByte maps a wire byte to a Function.
// Unknown codes become FuncNone so they are never mistaken for a command.
func FunctionFromByte(b byte) Function {
	if b >= byte(FuncNone) {
		return FuncNone
	}
	return Function(b)
}

// IsValid indicates f is a known function code.
func (f Function) IsValid() bool {
	return f < FuncNone
}

// String implements fmt.Stringer.
func (f Function) String() string {
	if f <= FuncNone {
		return functionNames[f]
	}
	return fmt.Sprintf("func(%d)", byte(f))
}
