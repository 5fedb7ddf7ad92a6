/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package compress

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

func init() {
	register(Zstd, zstdSize)
}

// Encoders are safe for concurrent EncodeAll, so one is kept per level.
var zstdEncoders sync.Map // map[zstd.EncoderLevel]*zstd.Encoder

func zstdEncoder(level int) (*zstd.Encoder, error) {
	el := zstd.EncoderLevelFromZstd(level)
	if enc, ok := zstdEncoders.Load(el); ok {
		return enc.(*zstd.Encoder), nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(el))
	if err != nil {
		return nil, err
	}
	actual, loaded := zstdEncoders.LoadOrStore(el, enc)
	if loaded {
		_ = enc.Close()
	}
	return actual.(*zstd.Encoder), nil
}

func zstdSize(data []byte, level int) (int, error) {
	enc, err := zstdEncoder(level)
	if err != nil {
		return 0, err
	}
	return len(enc.EncodeAll(data, nil)), nil
}
