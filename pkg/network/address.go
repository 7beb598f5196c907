package network

import (
	"fmt"
	"net"
)

// IsIPv6 reports whether addr is an IPv6 literal.
func IsIPv6(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && ip.To4() == nil
}

// Discovery resolves which local network interface and netmask serve a
// given address. Implementations return "" for anything undiscoverable;
// callers decide whether to fall back to configured values.
type Discovery interface {
	InterfaceForAddress(ip string) string
	NetmaskForAddress(ip string) string
}

// SystemDiscovery walks the host's network interfaces to answer lookups.
type SystemDiscovery struct {
	// interfaces allows tests to substitute the OS enumeration.
	interfaces func() ([]net.Interface, error)
}

// NewSystemDiscovery returns a Discovery backed by the OS interface table.
func NewSystemDiscovery() *SystemDiscovery {
	return &SystemDiscovery{interfaces: net.Interfaces}
}

// InterfaceForAddress returns the name of the interface whose subnet
// contains ip, or "" when no interface matches.
func (d *SystemDiscovery) InterfaceForAddress(ip string) string {
	iface, _ := d.lookup(ip)
	return iface
}

// NetmaskForAddress returns the netmask of the subnet containing ip:
// dotted-quad for IPv4, prefix length for IPv6. "" when no subnet matches.
func (d *SystemDiscovery) NetmaskForAddress(ip string) string {
	_, netmask := d.lookup(ip)
	return netmask
}

func (d *SystemDiscovery) lookup(addr string) (string, string) {
	target := net.ParseIP(addr)
	if target == nil {
		return "", ""
	}

	ifaces, err := d.interfaces()
	if err != nil {
		return "", ""
	}

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok || !ipnet.Contains(target) {
				continue
			}
			return iface.Name, formatNetmask(ipnet.Mask, target)
		}
	}
	return "", ""
}

func formatNetmask(mask net.IPMask, ip net.IP) string {
	if ip.To4() != nil {
		m := mask
		if len(m) == net.IPv6len {
			m = m[net.IPv6len-net.IPv4len:]
		}
		if len(m) != net.IPv4len {
			return ""
		}
		return fmt.Sprintf("%d.%d.%d.%d", m[0], m[1], m[2], m[3])
	}
	ones, _ := mask.Size()
	return fmt.Sprintf("%d", ones)
}

// StaticDiscovery answers lookups from fixed tables. Used in tests and for
// environment snapshots taken on another host.
type StaticDiscovery struct {
	Interfaces map[string]string
	Netmasks   map[string]string
}

func (d *StaticDiscovery) InterfaceForAddress(ip string) string {
	return d.Interfaces[ip]
}

func (d *StaticDiscovery) NetmaskForAddress(ip string) string {
	return d.Netmasks[ip]
}
