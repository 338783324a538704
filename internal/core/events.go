package core

// EventKind identifies something that happened during a step.
// The platform reacts to events (audio cues, persistence); games never do I/O.
type EventKind int

const (
	EventPickup EventKind = iota
	EventNerf
	EventBrickDestroyed
	EventBossSpawned
	EventBossHit
	EventLifeLost
	EventStageStart
	EventStageClear
	EventWin
	EventGameOver
	EventDialog
	EventBattleStart
	EventBattleWon
	EventSaved
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventNerf:
		return "nerf"
	case EventBrickDestroyed:
		return "brick_destroyed"
	case EventBossSpawned:
		return "boss_spawned"
	case EventBossHit:
		return "boss_hit"
	case EventLifeLost:
		return "life_lost"
	case EventStageStart:
		return "stage_start"
	case EventStageClear:
		return "stage_clear"
	case EventWin:
		return "win"
	case EventGameOver:
		return "game_over"
	case EventDialog:
		return "dialog"
	case EventBattleStart:
		return "battle_start"
	case EventBattleWon:
		return "battle_won"
	case EventSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Event is a single occurrence with an optional integer payload
// (stage index, score, item kind).
type Event struct {
	Kind  EventKind
	Value int
}

// Events collects events during a step.
type Events []Event

// Add appends an event.
func (e *Events) Add(kind EventKind, value int) {
	*e = append(*e, Event{Kind: kind, Value: value})
}

// Has reports whether an event of the given kind was raised.
func (e Events) Has(kind EventKind) bool {
	for _, ev := range e {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
