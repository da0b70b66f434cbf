package profile

import (
	"fmt"
	"strings"

	"udid-retriever/internal/config"
	"udid-retriever/internal/domain/device"
)

const (
	// ContentType marks the response as an installable configuration
	// profile so iOS hands it to the settings app.
	ContentType = "application/x-apple-aspen-config; charset=utf-8"

	// Filename is the attachment name of the issued profile.
	Filename = "device.mobileconfig"
)

const documentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>PayloadContent</key>
    <dict>
        <key>URL</key>
        <string>%s</string>
        <key>DeviceAttributes</key>
        <array>
%s
        </array>
    </dict>
    <key>PayloadOrganization</key>
    <string>%s</string>
    <key>PayloadDisplayName</key>
    <string>%s</string>
    <key>PayloadVersion</key>
    <integer>1</integer>
    <key>PayloadUUID</key>
    <string>%s</string>
    <key>PayloadIdentifier</key>
    <string>%s</string>
    <key>PayloadDescription</key>
    <string>%s</string>
    <key>PayloadType</key>
    <string>Profile Service</string>
</dict>
</plist>`

// Service builds the configuration profile a device installs to report
// its attributes back. The document is fully deterministic given the
// callback URL; everything else comes from fixed configuration.
type Service struct {
	cfg config.ProfileConfig
}

func NewService(cfg config.ProfileConfig) *Service {
	return &Service{cfg: cfg}
}

// Build renders the profile document pointing the device at
// callbackURL.
func (s *Service) Build(callbackURL string) (string, error) {
	if callbackURL == "" {
		return "", fmt.Errorf("callback URL is empty")
	}

	attrs := make([]string, 0, len(device.RequestedAttributes()))
	for _, name := range device.RequestedAttributes() {
		attrs = append(attrs, "            <string>"+name+"</string>")
	}

	doc := fmt.Sprintf(documentTemplate,
		callbackURL,
		strings.Join(attrs, "\n"),
		s.cfg.Organization,
		s.cfg.DisplayName,
		s.cfg.UUID,
		s.cfg.Identifier,
		s.cfg.Description,
	)

	return doc, nil
}
