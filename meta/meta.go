// meta/meta.go
package meta

// SEARCH_DEPTH defines the default number of plies searched per decision.
const SEARCH_DEPTH = 6

// PARTIAL_DEPTH defines the default depth of the partial-information search.
const PARTIAL_DEPTH = 4

// STRONG_THRESHOLD defines the likelihood score at which an opponent piece is taken as strong.
const STRONG_THRESHOLD = 1000

// MAX_TURNS defines the number of half-moves after which a game is drawn.
const MAX_TURNS = 300

// GO_ROUTINES defines the number of games played concurrently in experiments.
const GO_ROUTINES = 8
