// Package debug runs an interactive terminal console that drives the
// locomotion controller with keyboard input and renders a one-line status
// readout per tick.
package debug

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/term"

	"github.com/Versifine/strider/internal/locomotion"
	"github.com/Versifine/strider/internal/vmath"
)

const (
	defaultMovePulse = 250 * time.Millisecond
	yawStep          = float32(10.0)
)

// Console doubles as the controller's input source and camera rig: yaw set
// with the arrow keys orients both the view and the movement axes. Pressed
// keys pulse their axis for a short window since a terminal delivers key
// repeats, not key-up events.
type Console struct {
	ctrl      *locomotion.Controller
	tickRate  int
	movePulse time.Duration

	// OnTick runs at the top of every tick, before the controller update.
	// The sandbox uses it to apply pending config reloads.
	OnTick func()

	mu            sync.Mutex
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	jumpUntil     time.Time
	jumpQueued    bool
	crouchQueued  bool
	slideQueued   bool
	sprint        bool
	aim           bool
	yaw           float32
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(tickRate int) *Console {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Console{tickRate: tickRate, movePulse: defaultMovePulse}
}

// Bind attaches the controller the console drives. The controller is built
// after the console because it takes the console as its input source.
func (c *Console) Bind(ctrl *locomotion.Controller) { c.ctrl = ctrl }

// Snapshot implements locomotion.Source. Queued presses are single-tick
// edges: delivering one consumes it.
func (c *Console) Snapshot() locomotion.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var snap locomotion.Snapshot
	if now.Before(c.forwardUntil) {
		snap.MoveY += 1
	}
	if now.Before(c.backwardUntil) {
		snap.MoveY -= 1
	}
	if now.Before(c.rightUntil) {
		snap.MoveX += 1
	}
	if now.Before(c.leftUntil) {
		snap.MoveX -= 1
	}

	snap.JumpPressed = c.jumpQueued
	snap.JumpHeld = c.jumpQueued || now.Before(c.jumpUntil)
	snap.CrouchPressed = c.crouchQueued
	snap.SlidePressed = c.slideQueued
	snap.SprintHeld = c.sprint
	snap.AimHeld = c.aim
	c.jumpQueued = false
	c.crouchQueued = false
	c.slideQueued = false
	return snap
}

// Forward implements locomotion.Rig.
func (c *Console) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vmath.YawDir(c.yaw)
}

// Right implements locomotion.Rig.
func (c *Console) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vmath.YawDir(c.yaw + 90)
}

// Aiming implements locomotion.Rig.
func (c *Console) Aiming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aim
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil || c.ctrl == nil {
		return fmt.Errorf("console has no controller bound")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Print("[sandbox] console started (W/A/S/D pulse, Space jump, C crouch, X slide, ] sprint, F aim, arrows yaw, :, Q quit)\r\n")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	keys := make(chan byte, 8)
	go readKeys(ctx, keys)

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			if quit := c.handleKey(keys, b); quit {
				return nil
			}
		}
	}
}

func readKeys(ctx context.Context, out chan<- byte) {
	defer close(out)
	buf := make([]byte, 1)
	for {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		out <- buf[0]
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	dt := 1 / float32(c.tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(c.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.OnTick != nil {
				c.OnTick()
			}
			c.ctrl.Update(dt)
			c.renderStatusLine()
		}
	}
}

func (c *Console) handleKey(keys <-chan byte, b byte) (quit bool) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return false
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return false
	case 'q', 'Q', 3: // Ctrl-C arrives as a raw byte in raw mode
		return true
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ' ':
		c.queueJump()
	case 'c', 'C':
		c.queue(&c.crouchQueued)
	case 'x', 'X':
		c.queue(&c.slideQueued)
	case ']':
		c.toggleSprint()
	case 'f', 'F':
		c.toggleAim()
	case 'k', 'K':
		c.ctrl.CancelVault()
		c.ctrl.CancelSlide()
	case 'm', 'M':
		c.ctrl.SetMoveEnabled(!c.ctrl.MoveEnabled())
	case 27: // ESC + arrow sequence
		if next := readByte(keys); next != '[' {
			return false
		}
		switch readByte(keys) {
		case 'D':
			c.adjustYaw(-yawStep)
		case 'C':
			c.adjustYaw(yawStep)
		}
	}
	c.renderStatusLine()
	return false
}

func readByte(keys <-chan byte) byte {
	select {
	case b := <-keys:
		return b
	case <-time.After(50 * time.Millisecond):
		return 0
	}
}

func (c *Console) pulse(until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = time.Now().Add(c.movePulse)
	*opposite = time.Time{}
}

func (c *Console) queue(flag *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*flag = true
}

func (c *Console) queueJump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jumpQueued = true
	c.jumpUntil = time.Now().Add(c.movePulse)
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sprint = !c.sprint
	if c.sprint {
		c.aim = false
	}
}

func (c *Console) toggleAim() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aim = !c.aim
	if c.aim {
		c.sprint = false
	}
}

func (c *Console) adjustYaw(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = vmath.NormalizeAngle(c.yaw + delta)
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Print("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
	case 27: // ESC cancels
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Print("\r\n[sandbox] command cancelled\r\n")
		c.renderStatusLine()
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s \r:%s", buf, buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		pos := c.ctrl.Position()
		fmt.Printf("[sandbox] pos=(%.3f,%.3f,%.3f) speed=%.2f norm=%.2f yaw=%.1f ground=%t crouch=%t slide=%t vault=%t\r\n",
			pos.X(), pos.Y(), pos.Z(),
			c.ctrl.Speed(), c.ctrl.NormalizedSpeed(), c.ctrl.Yaw(),
			c.ctrl.Grounded(), c.ctrl.Crouching(), c.ctrl.Sliding(), c.ctrl.Vaulting(),
		)
	case "yaw":
		if len(parts) != 2 {
			fmt.Print("[sandbox] usage: :yaw <degrees>\r\n")
			return
		}
		v, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			fmt.Print("[sandbox] invalid yaw\r\n")
			return
		}
		c.mu.Lock()
		c.yaw = vmath.NormalizeAngle(float32(v))
		c.mu.Unlock()
		fmt.Printf("[sandbox] camera yaw set to %.1f\r\n", v)
	default:
		fmt.Printf("[sandbox] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Print("[sandbox] keys:\r\n")
	fmt.Print("  W/S/A/D: pulse movement (~250ms)\r\n")
	fmt.Print("  Space: jump / vault\r\n")
	fmt.Print("  C: toggle crouch\r\n")
	fmt.Print("  X: slide\r\n")
	fmt.Print("  ]: toggle sprint\r\n")
	fmt.Print("  F: toggle aim\r\n")
	fmt.Print("  K: cancel vault/slide\r\n")
	fmt.Print("  M: toggle movement\r\n")
	fmt.Print("  Arrow Left/Right: camera yaw +/-10\r\n")
	fmt.Print("  Q: quit\r\n")
	fmt.Print("[sandbox] commands:\r\n")
	fmt.Print("  :state\r\n")
	fmt.Print("  :yaw <degrees>\r\n")
	fmt.Print("  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	sprint := c.sprint
	aim := c.aim
	camYaw := c.yaw
	width := c.statusWidth
	c.mu.Unlock()

	pos := c.ctrl.Position()
	line := fmt.Sprintf(
		"[SPR:%s AIM:%s | cam:%.0f yaw:%.0f | X:%.2f Y:%.2f Z:%.2f spd:%.2f | gnd:%t crc:%t sld:%t vlt:%t]",
		boolLabel(sprint), boolLabel(aim),
		camYaw, c.ctrl.Yaw(),
		pos.X(), pos.Y(), pos.Z(), c.ctrl.Speed(),
		c.ctrl.Grounded(), c.ctrl.Crouching(), c.ctrl.Sliding(), c.ctrl.Vaulting(),
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Printf("\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
