// Package discovery finds streaming hosts on the local network over
// mDNS/DNS-SD.
//
// Hosts advertise the _nvstream._tcp service. The instance name is the
// host's display name; the service port is the HTTP pairing port
// (47989 unless reconfigured).
//
// Browse results are aggregated by instance name: addresses seen on
// several interfaces are merged into one ServiceEntry. Scan feeds the
// results into a host.Store, keeping any pairing state already recorded
// for a host.
package discovery
