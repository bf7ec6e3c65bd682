package teams

// franchises is the fixed 30-entry table of current NBA franchises.
var franchises = []Team{
	{ID: "atl", Name: "Hawks", FullName: "Atlanta Hawks", Abbreviation: "ATL", City: "Atlanta", Conference: "East", Division: "Southeast", NBAID: 1610612737, BalldontlieID: 1},
	{ID: "bos", Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS", City: "Boston", Conference: "East", Division: "Atlantic", NBAID: 1610612738, BalldontlieID: 2},
	{ID: "bkn", Name: "Nets", FullName: "Brooklyn Nets", Abbreviation: "BKN", City: "Brooklyn", Conference: "East", Division: "Atlantic", NBAID: 1610612751, BalldontlieID: 3},
	{ID: "cha", Name: "Hornets", FullName: "Charlotte Hornets", Abbreviation: "CHA", City: "Charlotte", Conference: "East", Division: "Southeast", NBAID: 1610612766, BalldontlieID: 4},
	{ID: "chi", Name: "Bulls", FullName: "Chicago Bulls", Abbreviation: "CHI", City: "Chicago", Conference: "East", Division: "Central", NBAID: 1610612741, BalldontlieID: 5},
	{ID: "cle", Name: "Cavaliers", FullName: "Cleveland Cavaliers", Abbreviation: "CLE", City: "Cleveland", Conference: "East", Division: "Central", NBAID: 1610612739, BalldontlieID: 6},
	{ID: "dal", Name: "Mavericks", FullName: "Dallas Mavericks", Abbreviation: "DAL", City: "Dallas", Conference: "West", Division: "Southwest", NBAID: 1610612742, BalldontlieID: 7},
	{ID: "den", Name: "Nuggets", FullName: "Denver Nuggets", Abbreviation: "DEN", City: "Denver", Conference: "West", Division: "Northwest", NBAID: 1610612743, BalldontlieID: 8},
	{ID: "det", Name: "Pistons", FullName: "Detroit Pistons", Abbreviation: "DET", City: "Detroit", Conference: "East", Division: "Central", NBAID: 1610612765, BalldontlieID: 9},
	{ID: "gsw", Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW", City: "Golden State", Conference: "West", Division: "Pacific", NBAID: 1610612744, BalldontlieID: 10},
	{ID: "hou", Name: "Rockets", FullName: "Houston Rockets", Abbreviation: "HOU", City: "Houston", Conference: "West", Division: "Southwest", NBAID: 1610612745, BalldontlieID: 11},
	{ID: "ind", Name: "Pacers", FullName: "Indiana Pacers", Abbreviation: "IND", City: "Indiana", Conference: "East", Division: "Central", NBAID: 1610612754, BalldontlieID: 12},
	{ID: "lac", Name: "Clippers", FullName: "Los Angeles Clippers", Abbreviation: "LAC", City: "Los Angeles", Conference: "West", Division: "Pacific", NBAID: 1610612746, BalldontlieID: 13},
	{ID: "lal", Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL", City: "Los Angeles", Conference: "West", Division: "Pacific", NBAID: 1610612747, BalldontlieID: 14},
	{ID: "mem", Name: "Grizzlies", FullName: "Memphis Grizzlies", Abbreviation: "MEM", City: "Memphis", Conference: "West", Division: "Southwest", NBAID: 1610612763, BalldontlieID: 15},
	{ID: "mia", Name: "Heat", FullName: "Miami Heat", Abbreviation: "MIA", City: "Miami", Conference: "East", Division: "Southeast", NBAID: 1610612748, BalldontlieID: 16},
	{ID: "mil", Name: "Bucks", FullName: "Milwaukee Bucks", Abbreviation: "MIL", City: "Milwaukee", Conference: "East", Division: "Central", NBAID: 1610612749, BalldontlieID: 17},
	{ID: "min", Name: "Timberwolves", FullName: "Minnesota Timberwolves", Abbreviation: "MIN", City: "Minnesota", Conference: "West", Division: "Northwest", NBAID: 1610612750, BalldontlieID: 18},
	{ID: "nop", Name: "Pelicans", FullName: "New Orleans Pelicans", Abbreviation: "NOP", City: "New Orleans", Conference: "West", Division: "Southwest", NBAID: 1610612740, BalldontlieID: 19},
	{ID: "nyk", Name: "Knicks", FullName: "New York Knicks", Abbreviation: "NYK", City: "New York", Conference: "East", Division: "Atlantic", NBAID: 1610612752, BalldontlieID: 20},
	{ID: "okc", Name: "Thunder", FullName: "Oklahoma City Thunder", Abbreviation: "OKC", City: "Oklahoma City", Conference: "West", Division: "Northwest", NBAID: 1610612760, BalldontlieID: 21},
	{ID: "orl", Name: "Magic", FullName: "Orlando Magic", Abbreviation: "ORL", City: "Orlando", Conference: "East", Division: "Southeast", NBAID: 1610612753, BalldontlieID: 22},
	{ID: "phi", Name: "76ers", FullName: "Philadelphia 76ers", Abbreviation: "PHI", City: "Philadelphia", Conference: "East", Division: "Atlantic", NBAID: 1610612755, BalldontlieID: 23},
	{ID: "phx", Name: "Suns", FullName: "Phoenix Suns", Abbreviation: "PHX", City: "Phoenix", Conference: "West", Division: "Pacific", NBAID: 1610612756, BalldontlieID: 24},
	{ID: "por", Name: "Trail Blazers", FullName: "Portland Trail Blazers", Abbreviation: "POR", City: "Portland", Conference: "West", Division: "Northwest", NBAID: 1610612757, BalldontlieID: 25},
	{ID: "sac", Name: "Kings", FullName: "Sacramento Kings", Abbreviation: "SAC", City: "Sacramento", Conference: "West", Division: "Pacific", NBAID: 1610612758, BalldontlieID: 26},
	{ID: "sas", Name: "Spurs", FullName: "San Antonio Spurs", Abbreviation: "SAS", City: "San Antonio", Conference: "West", Division: "Southwest", NBAID: 1610612759, BalldontlieID: 27},
	{ID: "tor", Name: "Raptors", FullName: "Toronto Raptors", Abbreviation: "TOR", City: "Toronto", Conference: "East", Division: "Atlantic", NBAID: 1610612761, BalldontlieID: 28},
	{ID: "uta", Name: "Jazz", FullName: "Utah Jazz", Abbreviation: "UTA", City: "Utah", Conference: "West", Division: "Northwest", NBAID: 1610612762, BalldontlieID: 29},
	{ID: "was", Name: "Wizards", FullName: "Washington Wizards", Abbreviation: "WAS", City: "Washington", Conference: "East", Division: "Southeast", NBAID: 1610612764, BalldontlieID: 30},
}

// spellings rewrites ambiguous franchise spellings to the canonical full name.
// Keys are lower-case with collapsed whitespace.
var spellings = map[string]string{
	"la clippers":           "Los Angeles Clippers",
	"l.a. clippers":         "Los Angeles Clippers",
	"la lakers":             "Los Angeles Lakers",
	"l.a. lakers":           "Los Angeles Lakers",
	"phx suns":              "Phoenix Suns",
	"okc thunder":           "Oklahoma City Thunder",
	"ny knicks":             "New York Knicks",
	"gs warriors":           "Golden State Warriors",
	"philadelphia sixers":   "Philadelphia 76ers",
	"portland trailblazers": "Portland Trail Blazers",
	"no pelicans":           "New Orleans Pelicans",
	"sa spurs":              "San Antonio Spurs",
	"minnesota wolves":      "Minnesota Timberwolves",
	"charlotte bobcats":     "Charlotte Hornets",
	"new jersey nets":       "Brooklyn Nets",
	"new orleans hornets":   "New Orleans Pelicans",
	"seattle supersonics":   "Oklahoma City Thunder",
}

// aliases maps city-only, nickname-only and legacy tricode variants to codes.
// "Los Angeles" and "LA" are left out on purpose: they name two franchises.
var aliases = map[string]Code{
	"sixers":  "PHI",
	"blazers": "POR",
	"wolves":  "MIN",
	"cavs":    "CLE",
	"mavs":    "DAL",
	"dubs":    "GSW",
	"brk":     "BKN",
	"pho":     "PHX",
	"gs":      "GSW",
	"no":      "NOP",
	"nor":     "NOP",
	"ny":      "NYK",
	"sa":      "SAS",
	"utah":    "UTA",
	"uth":     "UTA",
	"wsh":     "WAS",
	"cho":     "CHA",
	"okla":    "OKC",
	"phl":     "PHI",
}
