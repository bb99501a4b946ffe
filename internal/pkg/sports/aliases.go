package sports

// Team alias tables map full upstream team names to short canonical codes.
// Keys are normalized at catalogue construction, so casing and punctuation in
// this file are cosmetic.

var nbaTeamAliases = map[string]string{
	"atlanta hawks": "ATL", "boston celtics": "BOS", "brooklyn nets": "BKN",
	"charlotte hornets": "CHA", "chicago bulls": "CHI", "cleveland cavaliers": "CLE",
	"dallas mavericks": "DAL", "denver nuggets": "DEN", "detroit pistons": "DET",
	"golden state warriors": "GSW", "houston rockets": "HOU", "indiana pacers": "IND",
	"los angeles clippers": "LAC", "los angeles lakers": "LAL", "memphis grizzlies": "MEM",
	"miami heat": "MIA", "milwaukee bucks": "MIL", "minnesota timberwolves": "MIN",
	"new orleans pelicans": "NOP", "new york knicks": "NYK", "oklahoma city thunder": "OKC",
	"orlando magic": "ORL", "philadelphia 76ers": "PHI", "phoenix suns": "PHX",
	"portland trail blazers": "POR", "sacramento kings": "SAC", "san antonio spurs": "SAS",
	"toronto raptors": "TOR", "utah jazz": "UTA", "washington wizards": "WAS",
}

var nflTeamAliases = map[string]string{
	"arizona cardinals": "ARI", "atlanta falcons": "ATL", "baltimore ravens": "BAL",
	"buffalo bills": "BUF", "carolina panthers": "CAR", "chicago bears": "CHI",
	"cincinnati bengals": "CIN", "cleveland browns": "CLE", "dallas cowboys": "DAL",
	"denver broncos": "DEN", "detroit lions": "DET", "green bay packers": "GB",
	"houston texans": "HOU", "indianapolis colts": "IND", "jacksonville jaguars": "JAX",
	"kansas city chiefs": "KC", "las vegas raiders": "LV", "los angeles chargers": "LAC",
	"los angeles rams": "LAR", "miami dolphins": "MIA", "minnesota vikings": "MIN",
	"new england patriots": "NE", "new orleans saints": "NO", "new york giants": "NYG",
	"new york jets": "NYJ", "philadelphia eagles": "PHI", "pittsburgh steelers": "PIT",
	"san francisco 49ers": "SF", "seattle seahawks": "SEA", "tampa bay buccaneers": "TB",
	"tennessee titans": "TEN", "washington commanders": "WAS",
}
