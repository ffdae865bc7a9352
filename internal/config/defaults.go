package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"title":   appName,
		"urgency": "normal",
		"icon":    "",
		"backend": "auto",
		"verbose": false,
	}
}

// GetDefaultConfigTemplate returns a commented TOML config with every key
func GetDefaultConfigTemplate() string {
	return `# any-notify configuration
# Location: $XDG_CONFIG_HOME/any-notify/config.toml
# Every key can also be set with an ANY_NOTIFY_ environment variable,
# e.g. ANY_NOTIFY_URGENCY=critical. Command-line flags win over both.

# Notification title
title = "any-notify"

# Urgency: low, normal or critical
urgency = "normal"

# Icon name or absolute path (empty for none)
icon = ""

# Display timeout in milliseconds; leave unset for the backend default
# timeout_ms = 5000

# Backend: auto, native-daemon, message-bus, compat-popup or text-fallback
backend = "auto"

# Log backend attempts to stderr
verbose = false
`
}
