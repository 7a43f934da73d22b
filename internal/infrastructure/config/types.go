package config

// Tuning is the root config for tuning.yaml.
// Velocities and accelerations are in pixels per frame at Physics.TargetFPS;
// timers are in seconds.
type Tuning struct {
	Display   DisplayConfig   `yaml:"display"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Enemies   EnemyConfig     `yaml:"enemies"`
	Boss      BossConfig      `yaml:"boss"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Run       RunConfig       `yaml:"run"`
	Generator GeneratorConfig `yaml:"generator"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	TPS          int    `yaml:"tps"`
	Title        string `yaml:"title"`
}

type PhysicsConfig struct {
	TargetFPS        float64 `yaml:"targetFPS"`
	FrameScaleCap    float64 `yaml:"frameScaleCap"`
	Gravity          float64 `yaml:"gravity"`
	MaxFallSpeed     float64 `yaml:"maxFallSpeed"`
	MoveSpeed        float64 `yaml:"moveSpeed"`
	Smoothing        float64 `yaml:"smoothing"` // Blend factor per frame toward the target speed
	VelocityEpsilon  float64 `yaml:"velocityEpsilon"`
	JumpVelocity     float64 `yaml:"jumpVelocity"`
	DoubleJumpFactor float64 `yaml:"doubleJumpFactor"`
	PlanarSpeed      float64 `yaml:"planarSpeed"`
	LandingEpsilon   float64 `yaml:"landingEpsilon"`
}

type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	MaxDoubleJumps int     `yaml:"maxDoubleJumps"`
	MaxSword       int     `yaml:"maxSword"`
	MaxShield      int     `yaml:"maxShield"`
	InvincibleTime float64 `yaml:"invincibleTime"`
	ShieldTime     float64 `yaml:"shieldTime"`
	SwordCooldown  float64 `yaml:"swordCooldown"`
	BeamSpeed      float64 `yaml:"beamSpeed"`
	BeamRadius     float64 `yaml:"beamRadius"`
	BeamLife       float64 `yaml:"beamLife"`
	StompTolerance float64 `yaml:"stompTolerance"`
	StompBounce    float64 `yaml:"stompBounce"` // Fraction of JumpVelocity after a stomp
	SwordPerPickup int     `yaml:"swordPerPickup"`
	GoalReach      float64 `yaml:"goalReach"` // Goal hitbox inflation per side
	GoalLockTime   float64 `yaml:"goalLockTime"`
}

type EnemyConfig struct {
	WalkerWidth      float64 `yaml:"walkerWidth"`
	WalkerHeight     float64 `yaml:"walkerHeight"`
	WalkerSpeed      float64 `yaml:"walkerSpeed"`
	WalkerHealth     int     `yaml:"walkerHealth"`
	ToughHealth      int     `yaml:"toughHealth"`
	InvulnTime       float64 `yaml:"invulnTime"`
	DeathTime        float64 `yaml:"deathTime"`
	ShooterWidth     float64 `yaml:"shooterWidth"`
	ShooterHeight    float64 `yaml:"shooterHeight"`
	ShooterHealth    int     `yaml:"shooterHealth"`
	ShooterCooldown  float64 `yaml:"shooterCooldown"`
	ShooterJitter    float64 `yaml:"shooterJitter"`
	ShooterRange     float64 `yaml:"shooterRange"`
	ProjectileSpeed  float64 `yaml:"projectileSpeed"`
	ProjectileRadius float64 `yaml:"projectileRadius"`
	ProjectileLife   float64 `yaml:"projectileLife"`
}

type BossConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BaseHealth      int     `yaml:"baseHealth"`
	HealthDivisor   int     `yaml:"healthDivisor"` // Extra health per this many stage indices
	Speed           float64 `yaml:"speed"`
	InvulnTime      float64 `yaml:"invulnTime"`
	AttackInterval  float64 `yaml:"attackInterval"`
	VolleySize      int     `yaml:"volleySize"`
	VolleySpread    float64 `yaml:"volleySpread"`
	ShotSpeed       float64 `yaml:"shotSpeed"`
	ShotRadius      float64 `yaml:"shotRadius"`
	ShotLife        float64 `yaml:"shotLife"`
	CelebrationTime float64 `yaml:"celebrationTime"`
	SwordRespawn    float64 `yaml:"swordRespawn"`
}

type ScoringConfig struct {
	Coin          int     `yaml:"coin"`
	PowerUp       int     `yaml:"powerUp"`
	Stomp         int     `yaml:"stomp"`
	ShooterKill   int     `yaml:"shooterKill"`
	BossKill      int     `yaml:"bossKill"`
	Goal          int     `yaml:"goal"`
	ComboWindow   float64 `yaml:"comboWindow"`
	ComboStep     float64 `yaml:"comboStep"`
	TimeBonusBase float64 `yaml:"timeBonusBase"`
	TimeBonusRate float64 `yaml:"timeBonusRate"` // Points lost per second
}

type RunConfig struct {
	Lives       int `yaml:"lives"`
	StageCount  int `yaml:"stageCount"`
	BossIndex   int `yaml:"bossIndex"`   // -1 disables
	SecretIndex int `yaml:"secretIndex"` // -1 disables
}

type GeneratorConfig struct {
	SpineBase        int     `yaml:"spineBase"`
	SpinePerStage    float64 `yaml:"spinePerStage"`
	SpineMax         int     `yaml:"spineMax"`
	SegmentWidthMin  float64 `yaml:"segmentWidthMin"`
	SegmentWidthMax  float64 `yaml:"segmentWidthMax"`
	GapMin           float64 `yaml:"gapMin"`
	GapMax           float64 `yaml:"gapMax"`
	GapPerStage      float64 `yaml:"gapPerStage"`
	RiseMax          float64 `yaml:"riseMax"`
	AltitudeMin      float64 `yaml:"altitudeMin"` // Highest allowed spine top
	AltitudeMax      float64 `yaml:"altitudeMax"` // Lowest allowed spine top
	PlatformHeight   float64 `yaml:"platformHeight"`
	FloaterChance    float64 `yaml:"floaterChance"`
	FloaterRiseMin   float64 `yaml:"floaterRiseMin"`
	FloaterRiseMax   float64 `yaml:"floaterRiseMax"`
	FloaterWidthMin  float64 `yaml:"floaterWidthMin"`
	FloaterWidthMax  float64 `yaml:"floaterWidthMax"`
	Headroom         float64 `yaml:"headroom"`
	MoversBase       int     `yaml:"moversBase"`
	MoversPerStage   float64 `yaml:"moversPerStage"`
	MoverAttempts    int     `yaml:"moverAttempts"`
	MoverWidth       float64 `yaml:"moverWidth"`
	MoverTravel      float64 `yaml:"moverTravel"`
	MoverSpeed       float64 `yaml:"moverSpeed"`
	BouncyPerStage   float64 `yaml:"bouncyPerStage"`
	BouncyMax        float64 `yaml:"bouncyMax"`
	BounceVelocity   float64 `yaml:"bounceVelocity"`
	WalkerChance     float64 `yaml:"walkerChance"`
	WalkerMinWidth   float64 `yaml:"walkerMinWidth"`
	ToughPerStage    float64 `yaml:"toughPerStage"`
	ShootersMax      int     `yaml:"shootersMax"`
	ShooterMinWidth  float64 `yaml:"shooterMinWidth"`
	ShooterClearance float64 `yaml:"shooterClearance"`
	CoinsPerSurface  int     `yaml:"coinsPerSurface"`
	CoinSize         float64 `yaml:"coinSize"`
	CoinHover        float64 `yaml:"coinHover"`
	PowerUpAttempts  int     `yaml:"powerUpAttempts"`
	ReachRise        float64 `yaml:"reachRise"`
	ReachMargin      float64 `yaml:"reachMargin"`
	GoalWidth        float64 `yaml:"goalWidth"`
	GoalHeight       float64 `yaml:"goalHeight"`
	KillPlaneMargin  float64 `yaml:"killPlaneMargin"`
	LengthMargin     float64 `yaml:"lengthMargin"`
	Themes           int     `yaml:"themes"`
}
