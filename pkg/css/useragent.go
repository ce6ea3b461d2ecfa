package css

import _ "embed"

//go:embed useragent.css
var UserAgentStylesheet string

// UserAgentRules parses the default stylesheet. Callers get a fresh slice
// each time and may append to it.
func UserAgentRules() []Rule {
	return ParseStylesheet(UserAgentStylesheet)
}
