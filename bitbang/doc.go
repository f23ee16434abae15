// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitbang emulates a two-wire open-drain serial bus master over a
// pair of GPIO pins.
//
// Both lines idle released, floating high through external pull-up
// resistors. Driving a line means switching the pin to output low;
// releasing it means switching the pin back to an input with pull-up. The
// receiver signals acknowledgement by pulling the data line low during the
// ninth clock, and may pause the master mid-byte by holding the clock line
// low (clock stretching).
//
// Data setup and hold correctness comes from operation ordering (data is
// set before the clock edge), not fixed delays; an optional configurable
// hold stretches each clock phase for hosts that flip pins faster than the
// peripheral can follow. The bus targets a
// single slow peripheral: there is no clock-speed negotiation and no
// multi-master arbitration, and read transactions are not supported.
package bitbang
