package models

import "strings"

// Theme: оформление карточки турнира по виду спорта.
type Theme struct {
	Gradient string `json:"gradient"`
	Icon     string `json:"icon"`
}

var defaultTheme = Theme{Gradient: "from-indigo-900 to-purple-900", Icon: "trophy"}

var sportThemes = map[string]Theme{
	"cricket":      {Gradient: "from-green-600 to-emerald-800", Icon: "cricket"},
	"football":     {Gradient: "from-emerald-500 to-green-700", Icon: "football"},
	"soccer":       {Gradient: "from-emerald-500 to-green-700", Icon: "football"},
	"basketball":   {Gradient: "from-orange-500 to-red-600", Icon: "basketball"},
	"volleyball":   {Gradient: "from-yellow-400 to-orange-500", Icon: "volleyball"},
	"badminton":    {Gradient: "from-sky-400 to-blue-600", Icon: "shuttlecock"},
	"table tennis": {Gradient: "from-red-500 to-rose-700", Icon: "ping-pong"},
	"tennis":       {Gradient: "from-lime-400 to-green-600", Icon: "tennis"},
	"chess":        {Gradient: "from-gray-700 to-gray-900", Icon: "chess"},
	"kabaddi":      {Gradient: "from-amber-500 to-orange-700", Icon: "kabaddi"},
	"athletics":    {Gradient: "from-cyan-500 to-blue-700", Icon: "running"},
	"esports":      {Gradient: "from-fuchsia-600 to-violet-800", Icon: "gamepad"},
}

// ThemeForSport возвращает тему по названию спорта без учёта регистра и пробелов по краям.
func ThemeForSport(sport string) Theme {
	if th, ok := sportThemes[strings.ToLower(strings.TrimSpace(sport))]; ok {
		return th
	}
	return defaultTheme
}
