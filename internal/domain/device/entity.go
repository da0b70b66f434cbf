package device

import (
	"time"

	"github.com/google/uuid"
)

// Device is one enrolled device, keyed by the hardware UDID reported
// through the profile callback. UDID is the business key; ID is the
// system identifier used by the detail view.
type Device struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UDID          string    `json:"udid" gorm:"column:udid;uniqueIndex;not null"`
	DeviceName    string    `json:"device_name"`
	DeviceProduct string    `json:"device_product"`
	DeviceVersion string    `json:"device_version"`
	MACAddress    string    `json:"mac_address"`
	IMEI          string    `json:"imei"`
	ICCID         string    `json:"iccid" gorm:"column:iccid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Attributes a device may report back. The callback payload is
// whitelisted against these; anything else in the plist is ignored.
const (
	AttrUDID       = "UDID"
	AttrDeviceName = "DEVICE_NAME"
	AttrVersion    = "VERSION"
	AttrProduct    = "PRODUCT"
	AttrMACAddress = "MAC_ADDRESS_EN0"
	AttrIMEI       = "IMEI"
	AttrICCID      = "ICCID"
)

// RequestedAttributes is the attribute list embedded in the issued
// profile, in the order the profile declares them.
func RequestedAttributes() []string {
	return []string{
		AttrUDID,
		AttrDeviceName,
		AttrVersion,
		AttrProduct,
		AttrMACAddress,
		AttrIMEI,
		AttrICCID,
	}
}

// ApplyAttributes overwrites the reported fields from a callback
// payload. Missing attributes reset the field to empty, they are not
// merged with prior values.
func (d *Device) ApplyAttributes(attrs map[string]string) {
	d.DeviceName = attrs[AttrDeviceName]
	d.DeviceProduct = attrs[AttrProduct]
	d.DeviceVersion = attrs[AttrVersion]
	d.MACAddress = attrs[AttrMACAddress]
	d.IMEI = attrs[AttrIMEI]
	d.ICCID = attrs[AttrICCID]
}
