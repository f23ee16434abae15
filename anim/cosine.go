// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package anim

// cosTable maps a phase index to a vertical shift in [0,8]: a full cosine
// period, 4+4cos(2*pi*i/64), so the wobble boundary glides rather than
// steps. The length must stay a power of two; lookups mask with
// len(cosTable)-1.
var cosTable = [64]byte{
	8, 8, 8, 8, 8, 8, 7, 7, 7, 7, 6, 6, 6, 5, 5, 4,
	4, 4, 3, 3, 2, 2, 2, 1, 1, 1, 1, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 3, 3, 4,
	4, 4, 5, 5, 6, 6, 6, 7, 7, 7, 7, 8, 8, 8, 8, 8,
}
