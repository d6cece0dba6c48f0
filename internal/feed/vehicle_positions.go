// Package feed encodes the mock trains as a GTFS Realtime vehicle positions feed.
package feed

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

const GtfsRealtimeVersion = "2.0"

type Format string

const (
	FormatProtobuf Format = "protobuf"
	FormatJSON     Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch value {
	case "", "pb", "protobuf":
		return FormatProtobuf, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported feed format %q", value)
}

func (format Format) ContentType() string {
	if format == FormatJSON {
		return "application/json"
	}
	return "application/x-protobuf"
}

// VehiclePositions builds a full-dataset feed with one entity per train, stamped at now.
func VehiclePositions(catalog *transit.Catalog, now time.Time) *gtfs.FeedMessage {
	timestamp := uint64(now.Unix())

	trains := catalog.Trains()
	entities := make([]*gtfs.FeedEntity, 0, len(trains))
	for _, train := range trains {
		position := &gtfs.Position{
			Latitude:  proto.Float32(float32(train.Lat)),
			Longitude: proto.Float32(float32(train.Lng)),
		}
		if speed, ok := train.SpeedMetersPerSecond(); ok {
			position.Speed = proto.Float32(float32(speed))
		}

		entities = append(entities, &gtfs.FeedEntity{
			Id: proto.String(train.ID),
			Vehicle: &gtfs.VehiclePosition{
				Trip: &gtfs.TripDescriptor{
					RouteId: proto.String(train.Line),
				},
				Vehicle: &gtfs.VehicleDescriptor{
					Id:    proto.String(train.ID),
					Label: proto.String(train.ID),
				},
				Position:      position,
				CurrentStatus: gtfs.VehiclePosition_IN_TRANSIT_TO.Enum(),
				Timestamp:     proto.Uint64(timestamp),
			},
		})
	}

	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(GtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(timestamp),
		},
		Entity: entities,
	}
}

func Marshal(message *gtfs.FeedMessage, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		options := protojson.MarshalOptions{Multiline: true}
		return options.Marshal(message)
	case FormatProtobuf:
		return proto.Marshal(message)
	}
	return nil, fmt.Errorf("unsupported feed format %q", format)
}
