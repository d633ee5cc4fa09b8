package wordfall

// Session holds the counters the HUD shows. It is what the game writes
// its points, combo, health and correct words into.
type Session struct {
	Points       int
	Combo        int
	Health       int
	MaxHealth    int
	CorrectWords int
}

// SetPoints implements Counters.
func (s *Session) SetPoints(v int) { s.Points = v }

// SetCombo implements Counters.
func (s *Session) SetCombo(v int) { s.Combo = v }

// SetHealth implements Counters. Health is shown as hearts, so it never
// goes below zero here.
func (s *Session) SetHealth(v int) { s.Health = max(v, 0) }

// SetCorrectWords implements Counters.
func (s *Session) SetCorrectWords(v int) { s.CorrectWords = v }

// Hearts renders health as full and empty hearts.
func (s *Session) Hearts() string {
	full := min(s.Health, s.MaxHealth)
	out := make([]rune, 0, s.MaxHealth)
	for i := 0; i < s.MaxHealth; i++ {
		if i < full {
			out = append(out, '♥')
		} else {
			out = append(out, '♡')
		}
	}
	return string(out)
}
