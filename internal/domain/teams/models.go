package teams

// Team pairs an upstream full name with the code records carry.
type Team struct {
	Name string `json:"name" toml:"name"`
	Code string `json:"code" toml:"code"`
}

// builtin lists franchise names as the schedule feed spells them, uppercased.
// Relocated and renamed franchises keep their historical names so old seasons resolve.
var builtin = []Team{
	{Name: "ANAHEIM DUCKS", Code: "ANA"},
	{Name: "MIGHTY DUCKS OF ANAHEIM", Code: "ANA"},
	{Name: "ARIZONA COYOTES", Code: "ARI"},
	{Name: "PHOENIX COYOTES", Code: "PHX"},
	{Name: "ATLANTA THRASHERS", Code: "ATL"},
	{Name: "BOSTON BRUINS", Code: "BOS"},
	{Name: "BUFFALO SABRES", Code: "BUF"},
	{Name: "CALGARY FLAMES", Code: "CGY"},
	{Name: "CAROLINA HURRICANES", Code: "CAR"},
	{Name: "CHICAGO BLACKHAWKS", Code: "CHI"},
	{Name: "COLORADO AVALANCHE", Code: "COL"},
	{Name: "COLUMBUS BLUE JACKETS", Code: "CBJ"},
	{Name: "DALLAS STARS", Code: "DAL"},
	{Name: "DETROIT RED WINGS", Code: "DET"},
	{Name: "EDMONTON OILERS", Code: "EDM"},
	{Name: "FLORIDA PANTHERS", Code: "FLA"},
	{Name: "LOS ANGELES KINGS", Code: "L.A"},
	{Name: "MINNESOTA WILD", Code: "MIN"},
	{Name: "MONTRÉAL CANADIENS", Code: "MTL"},
	{Name: "MONTREAL CANADIENS", Code: "MTL"},
	{Name: "NASHVILLE PREDATORS", Code: "NSH"},
	{Name: "NEW JERSEY DEVILS", Code: "N.J"},
	{Name: "NEW YORK ISLANDERS", Code: "NYI"},
	{Name: "NEW YORK RANGERS", Code: "NYR"},
	{Name: "OTTAWA SENATORS", Code: "OTT"},
	{Name: "PHILADELPHIA FLYERS", Code: "PHI"},
	{Name: "PITTSBURGH PENGUINS", Code: "PIT"},
	{Name: "SAN JOSE SHARKS", Code: "S.J"},
	{Name: "SEATTLE KRAKEN", Code: "SEA"},
	{Name: "ST. LOUIS BLUES", Code: "STL"},
	{Name: "TAMPA BAY LIGHTNING", Code: "T.B"},
	{Name: "TORONTO MAPLE LEAFS", Code: "TOR"},
	{Name: "UTAH HOCKEY CLUB", Code: "UTA"},
	{Name: "UTAH MAMMOTH", Code: "UTA"},
	{Name: "VANCOUVER CANUCKS", Code: "VAN"},
	{Name: "VEGAS GOLDEN KNIGHTS", Code: "VGK"},
	{Name: "WASHINGTON CAPITALS", Code: "WSH"},
	{Name: "WINNIPEG JETS", Code: "WPG"},
}

// Builtin returns a copy of the default name table.
func Builtin() []Team {
	out := make([]Team, len(builtin))
	copy(out, builtin)
	return out
}
