package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/reaction.go/pkg/framework"
	"github.com/robotalks/reaction.go/pkg/lcd"
)

func expectArgs(c *ishell.Context, usage string) bool {
	if n := len(strings.Fields(usage)); len(c.Args) < n {
		c.Err(fmt.Errorf("expect %d arguments: %s", n, usage))
		return false
	}
	return true
}

var (
	// LCDResetCmd runs the LCD init sequence.
	LCDResetCmd = ishell.Cmd{
		Name: "lcd.reset",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).lcd.Reset(); err != nil {
				c.Err(err)
			}
		},
	}

	// LCDClearCmd clears the LCD.
	LCDClearCmd = ishell.Cmd{
		Name: "lcd.clear",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).lcd.Clear(); err != nil {
				c.Err(err)
			}
		},
	}

	// LCDPrintCmd prints text on a line.
	LCDPrintCmd = ishell.Cmd{
		Name:    "lcd.print",
		Aliases: []string{"p"},
		Help:    "LINE TEXT",
		Func: func(c *ishell.Context) {
			if !expectArgs(c, "LINE TEXT") {
				return
			}
			line, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid line %q", c.Args[0]))
				return
			}
			d := ShellFrom(c).lcd
			if err := d.MoveToLine(line); err != nil {
				c.Err(err)
				return
			}
			if err := d.PrintLine(lcd.Pad(strings.Join(c.Args[1:], " "))); err != nil {
				c.Err(err)
			}
		},
	}

	// ButtonsCmd reads buttons.
	ButtonsCmd = ishell.Cmd{
		Name:    "buttons",
		Aliases: []string{"b"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			b, err := s.ReadButtons()
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, b, "panel=%08b lcd=%02b\n", b.Panel, b.LCD)
		},
	}

	// LightsCmd reads or writes the panel lights.
	LightsCmd = ishell.Cmd{
		Name:    "lights",
		Aliases: []string{"l"},
		Help:    "[VALUE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				v, err := s.panel.ReadLights()
				if err != nil {
					c.Err(err)
					return
				}
				s.Print(c, v, "%08b\n", v)
				return
			}
			v, err := ParseByte(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			if err := s.panel.WriteLights(v); err != nil {
				c.Err(err)
			}
		},
	}

	// ChaseCmd runs the idle chase on the lights.
	ChaseCmd = ishell.Cmd{
		Name: "chase",
		Help: "[STEPS]",
		Func: func(c *ishell.Context) {
			steps := 8
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil {
					c.Err(fmt.Errorf("invalid steps %q", c.Args[0]))
					return
				}
				steps = n
			}
			if err := ShellFrom(c).Chase(steps, fx.DefaultInterval); err != nil {
				c.Err(err)
			}
		},
	}

	// RegReadCmd reads a register.
	RegReadCmd = ishell.Cmd{
		Name:    "reg.read",
		Aliases: []string{"rr"},
		Help:    "DEVICE REG",
		Func: func(c *ishell.Context) {
			if !expectArgs(c, "DEVICE REG") {
				return
			}
			s := ShellFrom(c)
			dev, err := s.Device(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			reg, err := ParseByte(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			v, err := dev.WriteRead(reg)
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, v, "%#02x\n", v)
		},
	}

	// RegWriteCmd writes a register.
	RegWriteCmd = ishell.Cmd{
		Name:    "reg.write",
		Aliases: []string{"rw"},
		Help:    "DEVICE REG VALUE",
		Func: func(c *ishell.Context) {
			if !expectArgs(c, "DEVICE REG VALUE") {
				return
			}
			dev, err := ShellFrom(c).Device(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			reg, err := ParseByte(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			v, err := ParseByte(c.Args[2])
			if err != nil {
				c.Err(err)
				return
			}
			if err := dev.Write(reg, v); err != nil {
				c.Err(err)
			}
		},
	}

	// WatchCmd prints button changes in background.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[off]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 && c.Args[0] == "off" {
				s.StopWatch()
				return
			}
			s.Watch(fx.DefaultInterval, func(b Buttons, err error) {
				if err != nil {
					c.Err(err)
					return
				}
				s.Print(c, b, "%s panel=%08b lcd=%02b\n",
					time.Now().Format("15:04:05.000"), b.Panel, b.LCD)
			})
		},
	}
)

func init() {
	AddCmds(
		&LCDResetCmd,
		&LCDClearCmd,
		&LCDPrintCmd,
		&ButtonsCmd,
		&LightsCmd,
		&ChaseCmd,
		&RegReadCmd,
		&RegWriteCmd,
		&WatchCmd,
	)
}
