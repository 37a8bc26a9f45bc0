package util

import (
	"unsafe"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

//go:linkname runtimeMemhash runtime.memhash
//go:noescape
func runtimeMemhash(p unsafe.Pointer, seed, s uintptr) uintptr

// MemHash is the hash function used by go map, it utilizes available hardware
// instructions (behaves as aeshash if aes instruction is available).
// NOTE: The hash seed changes for every process. So, this cannot be used as a
// persistent hash.
func MemHash(buf []byte) uint64 {
	return rthash(buf, 923)
}

// MemHashString is MemHash for string keys, avoiding a []byte copy.
func MemHashString(s string) uint64 {
	return MemHash(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func rthash(b []byte, seed uint64) uint64 {
	if len(b) == 0 {
		return seed
	}
	// The runtime hasher only works on uintptr. For 64-bit
	// architectures, we use the hasher directly. Otherwise,
	// we use two parallel hashers on the lower and upper 32 bits.
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return uint64(runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b))))
	}
	lo := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed), uintptr(len(b)))
	hi := runtimeMemhash(unsafe.Pointer(&b[0]), uintptr(seed>>32), uintptr(len(b)))
	return uint64(hi)<<32 | uint64(lo)
}

// Murmur3 returns a 64-bit murmur3 hash of buf. Unlike MemHash it is stable
// across processes, so bucket placement is reproducible.
func Murmur3(buf []byte) uint64 {
	return murmur3.Sum64(buf)
}

// Murmur3String is Murmur3 for string keys.
func Murmur3String(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

// XXH3String hashes a string key with xxh3, also process-stable.
func XXH3String(s string) uint64 {
	return xxh3.HashString(s)
}
