/*
Package png ships out bitmaps as PNG images.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package png

import (
	"bufio"
	"image/png"
	"io"
	"os"

	"github.com/npillmayer/lettermath/core"
	"github.com/npillmayer/lettermath/engine/raster"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lettermath.raster'.
func tracer() tracing.Trace {
	return tracing.Select("lettermath.raster")
}

// Encode writes a bitmap to w in PNG format.
func Encode(w io.Writer, bitmap *raster.Bitmap) error {
	if bitmap == nil {
		return core.Error(core.EINTERNAL, "cannot encode missing bitmap")
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, bitmap.Image()); err != nil {
		return core.WrapError(err, core.ERASTER, "cannot encode %s as PNG", bitmap)
	}
	return nil
}

// WriteFile writes a bitmap to a PNG file, replacing an existing file.
func WriteFile(path string, bitmap *raster.Bitmap) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = core.WrapError(cerr, core.ERASTER, "cannot close %s", path)
		}
	}()
	w := bufio.NewWriter(f)
	if err = Encode(w, bitmap); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return core.WrapError(err, core.ERASTER, "cannot write %s", path)
	}
	tracer().Infof("wrote %s to %s", bitmap, path)
	return nil
}
