package imageio

import "unsafe"

// hostLittleEndian uses a fixed integer value to determine the host's byte
// order at init time. NITF pixel containers wider than one byte are always
// stored big-endian on disk; ReadWindow consults this to decide whether a
// decoded pixel needs a byte swap into host order.
var hostLittleEndian = func() bool {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	return b[0] != 0x01
}()

// HostLittleEndian reports whether the running process is little-endian.
func HostLittleEndian() bool {
	return hostLittleEndian
}
