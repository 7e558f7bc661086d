package dropdown

import "fmt"

// Zone IDs for bubblezone click detection.
// Every ID is namespaced by the container ID so several dropdowns can share a screen.
const zonePrefix = "dropdown:"

func summaryZoneID(id string) string {
	return zonePrefix + id + ":summary"
}

func listZoneID(id string) string {
	return zonePrefix + id + ":list"
}

func itemZoneID(id string, key ItemKey) string {
	return fmt.Sprintf("%s%s:item:%d", zonePrefix, id, key)
}

// SummaryZoneID returns the zone ID of a container's summary view.
func SummaryZoneID(id string) string { return summaryZoneID(id) }

// ListZoneID returns the zone ID of a container's open list.
func ListZoneID(id string) string { return listZoneID(id) }

// ItemZoneID returns the zone ID of one item inside the open list.
func ItemZoneID(id string, key ItemKey) string { return itemZoneID(id, key) }
