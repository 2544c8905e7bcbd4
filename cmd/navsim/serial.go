package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/adrianmo/go-nmea"
	"go.bug.st/serial"

	"github.com/asgard/wayfarer/navlog"
	"github.com/asgard/wayfarer/navroute"
)

// readSerialFixes opens portName at baud and streams every GGA sentence it
// emits as a navroute.UserLocation on the returned channel. The channel is
// closed when the port read loop ends, either on a read error or when the
// device stops sending.
func readSerialFixes(portName string, baud int, logger *navlog.Logger) (<-chan navroute.UserLocation, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", portName, err)
	}

	fixes := make(chan navroute.UserLocation)
	go func() {
		defer close(fixes)
		defer port.Close()

		scanner := bufio.NewScanner(port)
		for scanner.Scan() {
			sentence, err := nmea.Parse(scanner.Text())
			if err != nil {
				logger.Warn("navsim: discarding unparseable NMEA sentence: %v", err)
				continue
			}

			gga, ok := sentence.(nmea.GGA)
			if !ok {
				continue
			}

			fixes <- navroute.UserLocation{
				Coordinates:         navroute.GeographicCoordinate{Lat: gga.Latitude, Lng: gga.Longitude},
				HorizontalAccuracyM: gga.HDOP * 5, // coarse HDOP-to-meters estimate, good enough for a demo
				Timestamp:           time.Now(),
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("navsim: serial read error: %v", err)
		}
	}()

	return fixes, nil
}
