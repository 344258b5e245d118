package scoregen

// Default generator settings.
const (
	defaultRows           = 200
	defaultStepInterval   = 1000
	defaultSecondsPerStep = 0.05
	defaultNoise          = 0.05
)

// Curve shape constants.
const (
	// decayFraction is the share of the run after which a curve has moved
	// 1-1/e of the way to its plateau.
	decayFraction = 0.25
	lossStart     = 5.0
	lossFloor     = 0.2
	rewardCeiling = 100.0
	stdevFraction = 0.1
	episodesPer   = 1000 // steps per episode
)
