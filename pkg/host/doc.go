// Package host keeps the client's records of streaming hosts: where they
// are, which server software they run, and whether they are paired.
//
// A successful pairing marks the host Paired and stores the certificate
// the host returned, which later encrypted sessions pin. The Store
// interface is what the pairing session consumes; MemoryStore serves
// tests and short-lived tools, FileStore persists records as JSON.
package host
