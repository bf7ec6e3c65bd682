package teams

import "github.com/preston-bernstein/nba-edge-service/internal/domain/teams"

const defaultSuggestions = 3

// Directory defines the contract for looking up canonical franchises.
type Directory interface {
	Teams() []teams.Team
	Team(code teams.Code) (teams.Team, bool)
	Resolve(name string) (teams.Code, bool)
	Suggest(name string, limit int) []teams.Team
}

// Service coordinates team operations using a Directory.
type Service struct {
	directory Directory
}

// NewService constructs a Service; a nil directory uses the default franchise table.
func NewService(directory Directory) *Service {
	if directory == nil {
		directory = teams.Default()
	}
	return &Service{directory: directory}
}

// Teams returns the canonical franchises.
func (s *Service) Teams() []teams.Team {
	return s.directory.Teams()
}

// TeamByCode returns a single franchise if the code is known.
func (s *Service) TeamByCode(code string) (teams.Team, bool) {
	return s.directory.Team(teams.Code(code))
}

// Resolve maps a free-form name to its franchise. When nothing matches, close names are
// returned as suggestions.
func (s *Service) Resolve(name string) (teams.Team, []teams.Team, bool) {
	if code, ok := s.directory.Resolve(name); ok {
		if team, ok := s.directory.Team(code); ok {
			return team, nil, true
		}
	}
	return teams.Team{}, s.directory.Suggest(name, defaultSuggestions), false
}

// Suggest returns franchises with names close to name.
func (s *Service) Suggest(name string) []teams.Team {
	return s.directory.Suggest(name, defaultSuggestions)
}
