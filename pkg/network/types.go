// Package network provides the typed client for the management service's
// network API: device inventory, connection configuration with
// create-or-update semantics, and applying the configured state.
package network

// Device is a network interface known to the management service.
type Device struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	State string `json:"state" yaml:"state"`
}

// Connection is a network connection configuration. The ID is unique within
// the connections collection and keys the create-or-update decision.
type Connection struct {
	ID          string    `json:"id" yaml:"id"`
	Interface   string    `json:"interface,omitempty" yaml:"interface,omitempty"`
	Method4     string    `json:"method4,omitempty" yaml:"method4,omitempty"`
	Method6     string    `json:"method6,omitempty" yaml:"method6,omitempty"`
	Gateway4    string    `json:"gateway4,omitempty" yaml:"gateway4,omitempty"`
	Gateway6    string    `json:"gateway6,omitempty" yaml:"gateway6,omitempty"`
	Addresses   []string  `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Nameservers []string  `json:"nameservers,omitempty" yaml:"nameservers,omitempty"`
	Wireless    *Wireless `json:"wireless,omitempty" yaml:"wireless,omitempty"`
}

// Wireless holds the wireless settings of a connection.
type Wireless struct {
	SSID     string `json:"ssid" yaml:"ssid"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Security string `json:"security,omitempty" yaml:"security,omitempty"`
	Hidden   bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}
