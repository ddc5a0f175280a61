// Package shell provides an interactive bench shell for checking the
// wiring of the LCD and the button panel.
package shell

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/reaction.go/pkg/bus"
	"github.com/robotalks/reaction.go/pkg/env"
	"github.com/robotalks/reaction.go/pkg/game"
	"github.com/robotalks/reaction.go/pkg/lcd"
	"github.com/robotalks/reaction.go/pkg/panel"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell    *ishell.Shell
	Hardware *env.Hardware

	devices map[string]bus.Device
	panel   *panel.Panel
	inputs  *panel.Panel
	lcd     *lcd.Driver

	watchLock   sync.Mutex
	watchCancel func()
}

// Buttons is the state of all buttons.
type Buttons struct {
	Panel byte `json:"panel"`
	LCD   byte `json:"lcd"`
}

const (
	shellKey = "$shell"
	prompt   = "panel > "

	// DevicePanel and DeviceLCD name the expanders in commands.
	DevicePanel = "panel"
	DeviceLCD   = "lcd"
)

var (
	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds registers commands, used during init.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// newShell wires the devices without an ishell. The `watch` command
// polls from its own goroutine so every device is locked.
func newShell(hw *env.Hardware) *Shell {
	panelDev, lcdDev := bus.NewLocked(hw.Panel), bus.NewLocked(hw.LCD)
	return &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Hardware:    hw,
		devices: map[string]bus.Device{
			DevicePanel: panelDev,
			DeviceLCD:   lcdDev,
		},
		panel:  panel.New(panelDev),
		inputs: panel.New(lcdDev),
		lcd:    lcd.New(lcdDev),
	}
}

// New creates a new shell.
func New(hw *env.Hardware) *Shell {
	s := newShell(hw)
	s.Shell = ishell.New()
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Device finds an expander by name.
func (s *Shell) Device(name string) (bus.Device, error) {
	dev, ok := s.devices[name]
	if !ok {
		return nil, fmt.Errorf("unknown device %q, expect %s or %s", name, DevicePanel, DeviceLCD)
	}
	return dev, nil
}

// ReadButtons reads buttons on both expanders.
func (s *Shell) ReadButtons() (Buttons, error) {
	var b Buttons
	var err error
	if b.Panel, err = s.panel.ReadButtons(); err != nil {
		return b, err
	}
	if b.LCD, err = s.inputs.ReadButtons(); err != nil {
		return b, err
	}
	b.LCD &= env.LCDInputs
	return b, nil
}

// Chase runs the idle chase for steps ticks.
func (s *Shell) Chase(steps int, interval time.Duration) error {
	cur := game.ChaseStart
	for i := 0; i < steps; i++ {
		if err := s.panel.WriteLights(cur); err != nil {
			return err
		}
		cur = game.NextChase(cur)
		time.Sleep(interval)
	}
	return s.panel.WriteLights(0)
}

// Watch polls buttons until stopped, calling fn on every change.
func (s *Shell) Watch(interval time.Duration, fn func(Buttons, error)) {
	ctx, cancel := context.WithCancel(context.Background())
	s.watchLock.Lock()
	if s.watchCancel != nil {
		s.watchCancel()
	}
	s.watchCancel = cancel
	s.watchLock.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var last Buttons
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			b, err := s.ReadButtons()
			if err != nil {
				fn(b, err)
				return
			}
			if b != last {
				last = b
				fn(b, nil)
			}
		}
	}()
}

// StopWatch stops watching buttons.
func (s *Shell) StopWatch() bool {
	s.watchLock.Lock()
	defer s.watchLock.Unlock()
	if s.watchCancel == nil {
		return false
	}
	s.watchCancel()
	s.watchCancel = nil
	return true
}

// Print prints v in JSON or using the format.
func (s *Shell) Print(c *ishell.Context, v interface{}, format string, args ...interface{}) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Printf(format, args...)
}

// ParseByte parses a byte in decimal, 0x hex or 0b binary.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.StopWatch()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	if err := env.ParseFlags(); err != nil {
		log.Fatalln(err)
	}
	hw, err := env.NewConfig().OpenHardware()
	if err != nil {
		log.Fatalln(err)
	}
	defer hw.Close()
	New(hw).Run(flag.Args()...)
}
