package models

// All lists every model almanac migrates.
var All = []interface{}{
	&Automation{},
	&AutomationRun{},
}
