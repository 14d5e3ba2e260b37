package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	iconDialogError = "dialog-error"

	urgencyCritical = "critical"
)

// NotifyError sends a desktop notification for an error that the user
// has to act on, like a broken configuration on daemon startup.
func NotifyError(title, text string) {
	notifySend(urgencyCritical, title, text, iconDialogError)
}

func notifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Warning("Cannot send notification, missing env variable 'DISPLAY'!")
		return
	}

	user, err := displaySessionUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	output, err := exec.Command("id", "-u", user).Output()
	userIdString := strings.TrimSpace(string(output))
	if len(userIdString) <= 0 {
		Warning("Cannot send notification, unable to detect user id: %v", err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userIdString+"/bus",
		"notify-send",
		"-a", "regen2go",
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

// displaySessionUser finds the user owning the session of the given
// display, since the daemon itself usually runs as root.
func displaySessionUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", fmt.Errorf("unable to find user of display session: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if strings.Contains(line, display) {
			return strings.TrimSpace(strings.Fields(line)[0]), nil
		}
	}
	return "", fmt.Errorf("unable to detect user of display session %s", display)
}
