package raster

// Mode is a Porter-Duff compositing operator.
type Mode uint8

// Compositing operators used for letter arithmetic.
const (
	SourceOver     Mode = iota // S + D*(1-Sa)
	DestinationOut             // D*(1-Sa)
	SourceIn                   // S*Da
	Xor                        // S*(1-Da) + D*(1-Sa)
)

func (m Mode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	case SourceIn:
		return "source-in"
	case Xor:
		return "xor"
	}
	return "mode?"
}

// BlendFunc combines a premultiplied source pixel with a premultiplied
// destination pixel.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Func returns the blend function of a mode. Unknown modes blend as
// source-over.
func (m Mode) Func() BlendFunc {
	switch m {
	case DestinationOut:
		return blendDestinationOut
	case SourceIn:
		return blendSourceIn
	case Xor:
		return blendXor
	}
	return blendSourceOver
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

func blendSourceIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendDestinationOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

// mulDiv255 computes a*b/255, rounded to nearest.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
