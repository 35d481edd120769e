package wca

import (
	"encoding/binary"

	"github.com/go-ole/go-ole"
	"github.com/google/uuid"
)

// IID_IAudioSessionEvents is answered by the Go-side notification object.
var IID_IAudioSessionEvents = ole.NewGUID("{24918ACC-64B3-37C1-8CA9-74A66E9957A8}")

// guidFromUUID converts RFC 4122 byte order to the Windows GUID layout,
// whose first three fields are little-endian.
func guidFromUUID(id uuid.UUID) ole.GUID {
	var g ole.GUID
	g.Data1 = binary.BigEndian.Uint32(id[0:4])
	g.Data2 = binary.BigEndian.Uint16(id[4:6])
	g.Data3 = binary.BigEndian.Uint16(id[6:8])
	copy(g.Data4[:], id[8:16])
	return g
}

func uuidFromGUID(g *ole.GUID) uuid.UUID {
	if g == nil {
		return uuid.Nil
	}
	var id uuid.UUID
	binary.BigEndian.PutUint32(id[0:4], g.Data1)
	binary.BigEndian.PutUint16(id[4:6], g.Data2)
	binary.BigEndian.PutUint16(id[6:8], g.Data3)
	copy(id[8:16], g.Data4[:])
	return id
}
