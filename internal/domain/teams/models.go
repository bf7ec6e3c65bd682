package teams

// Code is the canonical three-letter franchise identifier (e.g. "BOS").
type Code string

// Unresolved is returned alongside ok=false when a name maps to no franchise.
const Unresolved Code = ""

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// Team represents the normalized team shape for use inside games and schedule rows.
type Team struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	Abbreviation  string `json:"abbreviation"`
	City          string `json:"city"`
	Conference    string `json:"conference"`
	Division      string `json:"division"`
	NBAID         int    `json:"nbaId,omitempty"`
	BalldontlieID int    `json:"balldontlieId,omitempty"`
}

// Code returns the team's canonical code.
func (t Team) Code() Code {
	return Code(t.Abbreviation)
}
