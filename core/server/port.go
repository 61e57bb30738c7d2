package server

import (
	"fmt"
	"net"
	"strconv"
)

// FindFreePort returns the first port at or above start that can be bound
// on host. At most DefaultPortScan ports are probed.
func FindFreePort(host string, start int) (int, error) {
	if start < 0 || start > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, start)
	}

	// Port 0 asks the kernel for any free port.
	if start == 0 {
		return probe(host, 0)
	}

	last := min(start+DefaultPortScan-1, 65535)
	for port := start; port <= last; port++ {
		if _, err := probe(host, port); err == nil {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w: %s ports %d-%d", ErrNoFreePort, host, start, last)
}

// FreeAddr resolves addr to the first free host:port at or above its port.
func FreeAddr(addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPort, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPort, portStr)
	}

	free, err := FindFreePort(host, port)
	if err != nil {
		return "", err
	}

	return net.JoinHostPort(host, strconv.Itoa(free)), nil
}

func probe(host string, port int) (int, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return 0, err
	}
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port, nil
}
