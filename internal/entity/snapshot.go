package entity

// Snapshot is what a presentation layer needs to draw the game.
type Snapshot struct {
	Game       *Game           `json:"game"`
	StatusText string          `json:"status_text"`
	Playable   [BoardSize]bool `json:"playable"`
}

func (that *Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		Game:       that.Clone(),
		StatusText: that.StatusText(),
	}

	for i := range snapshot.Playable {
		snapshot.Playable[i] = that.IsCellPlayable(i)
	}

	return snapshot
}
