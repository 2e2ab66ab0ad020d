package eventsink

import "hash/crc32"

func crc32Of(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
