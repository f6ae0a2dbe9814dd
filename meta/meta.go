// meta/meta.go
package meta

// DEFAULT_ADDRESS is where the game listens when started with --rl-interface.
const DEFAULT_ADDRESS = "http://127.0.0.1:6000"

// PLAYER_ID is the player whose commands are sent with each step.
const PLAYER_ID = 1

// PRECISION is the default width at which the boundary search stops bisecting.
const PRECISION = 0.1

// MAX_DOUBLINGS caps the bracket expansion of the boundary search.
const MAX_DOUBLINGS = 20

// MAX_STEPS defines the step cap for scripted policy runs.
const MAX_STEPS = 2000

// STRIDE defines how many engine steps each policy decision covers.
const STRIDE = 5

// EPISODES defines the number of rollout episodes.
const EPISODES = 10
