package locomotion

// Config is the movement tuning block. It is loaded once at startup and read
// only during ticks; the sandbox may swap in a reloaded copy between ticks.
// Gravity is signed (negative pulls down); every speed is in units/second and
// every duration in seconds.
type Config struct {
	WalkSpeed    float32 `yaml:"walk_speed"`
	RunSpeed     float32 `yaml:"run_speed"`
	SprintSpeed  float32 `yaml:"sprint_speed"`
	CrouchSpeed  float32 `yaml:"crouch_speed"`
	StrafeSpeed  float32 `yaml:"strafe_speed"`
	AimSpeed     float32 `yaml:"aim_speed"`
	HipfireSpeed float32 `yaml:"hipfire_speed"`

	Acceleration float32 `yaml:"acceleration"`
	Deceleration float32 `yaml:"deceleration"`
	AirControl   float32 `yaml:"air_control"`

	JumpForce         float32 `yaml:"jump_force"`
	Gravity           float32 `yaml:"gravity"`
	FallMultiplier    float32 `yaml:"fall_multiplier"`
	LowJumpMultiplier float32 `yaml:"low_jump_multiplier"`
	ApexThreshold     float32 `yaml:"apex_threshold"`
	ApexMultiplier    float32 `yaml:"apex_multiplier"`
	CoyoteTime        float32 `yaml:"coyote_time"`
	JumpBufferTime    float32 `yaml:"jump_buffer_time"`
	TerminalVelocity  float32 `yaml:"terminal_velocity"`

	GroundCheckDistance float32 `yaml:"ground_check_distance"`
	MaxHorizontalSpeed  float32 `yaml:"max_horizontal_speed"`
	MaxSlopeAngle       float32 `yaml:"max_slope_angle"`
	SlopeMinAngle       float32 `yaml:"slope_min_angle"`
	SlopeSmoothing      float32 `yaml:"slope_smoothing"`
	SlopeSlideSpeed     float32 `yaml:"slope_slide_speed"`

	StandingHeight        float32 `yaml:"standing_height"`
	CrouchHeight          float32 `yaml:"crouch_height"`
	CrouchTransitionSpeed float32 `yaml:"crouch_transition_speed"`

	SlideHeight       float32 `yaml:"slide_height"`
	SlideSpeedBoost   float32 `yaml:"slide_speed_boost"`
	SlideDeceleration float32 `yaml:"slide_deceleration"`
	SlideDuration     float32 `yaml:"slide_duration"`
	MinSlideSpeed     float32 `yaml:"min_slide_speed"`
	SlideCooldown     float32 `yaml:"slide_cooldown"`

	RotationSpeed          float32 `yaml:"rotation_speed"`
	MoveDeadzone           float32 `yaml:"move_deadzone"`
	SprintForwardThreshold float32 `yaml:"sprint_forward_threshold"`
	StrafeThreshold        float32 `yaml:"strafe_threshold"`

	WalkAnimThreshold float32 `yaml:"walk_anim_threshold"`
	RunAnimThreshold  float32 `yaml:"run_anim_threshold"`

	VaultArcHeight float32 `yaml:"vault_arc_height"`
	VaultCooldown  float32 `yaml:"vault_cooldown"`
}

// DefaultConfig returns the baseline tuning the sandbox ships with.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:    2.5,
		RunSpeed:     4.0,
		SprintSpeed:  5.5,
		CrouchSpeed:  1.5,
		StrafeSpeed:  2.0,
		AimSpeed:     1.8,
		HipfireSpeed: 2.2,

		Acceleration: 10,
		Deceleration: 12,
		AirControl:   0.4,

		JumpForce:         5.5,
		Gravity:           -18,
		FallMultiplier:    2.0,
		LowJumpMultiplier: 2.5,
		ApexThreshold:     0.6,
		ApexMultiplier:    0.6,
		CoyoteTime:        0.15,
		JumpBufferTime:    0.15,
		TerminalVelocity:  20,

		GroundCheckDistance: 0.1,
		MaxHorizontalSpeed:  8,
		MaxSlopeAngle:       45,
		SlopeMinAngle:       8,
		SlopeSmoothing:      12,
		SlopeSlideSpeed:     3,

		StandingHeight:        1.8,
		CrouchHeight:          1.2,
		CrouchTransitionSpeed: 10,

		SlideHeight:       0.9,
		SlideSpeedBoost:   1.4,
		SlideDeceleration: 4,
		SlideDuration:     0.9,
		MinSlideSpeed:     3,
		SlideCooldown:     1,

		RotationSpeed:          360,
		MoveDeadzone:           0.1,
		SprintForwardThreshold: 0.5,
		StrafeThreshold:        0.7,

		WalkAnimThreshold: 2.5,
		RunAnimThreshold:  4.0,

		VaultArcHeight: 0.4,
		VaultCooldown:  0.5,
	}
}
