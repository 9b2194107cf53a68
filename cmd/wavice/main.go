/*
Copyright © 2018 the WAVICE authors.
This file is part of WAVICE.

WAVICE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WAVICE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WAVICE.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command wavice is a command-line interface for the WAVICE wave-ice
// attenuation model.
package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spectralmodel/wavice/waviceutil"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func main() {
	if err := waviceutil.Root.Execute(); err != nil {
		logger.Fatal(err)
	}
}
