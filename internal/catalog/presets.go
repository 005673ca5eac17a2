package catalog

import "regexp"

// Naming rule presets for the files the S1 hardware writes to its SD card.
// Pass these into Scan explicitly; the convention is device specific and
// callers may override it for other firmware.

// ImageNamePattern decodes the metadata the camera encodes into an image
// filename, e.g. Img_20190101_120000_001.jpg.
var ImageNamePattern = regexp.MustCompile(
	`Img_(?P<year>[0-9]{4})(?P<month>[0-9]{2})(?P<day>[0-9]{2})_(?P<hour>[0-9]{2})(?P<minute>[0-9]{2})(?P<second>[0-9]{2})_(?P<frame>[0-9]{3})\.jpg`)

// VideoNamePattern is the video counterpart, e.g. Vid_20190101_120000_001.mp4.
var VideoNamePattern = regexp.MustCompile(
	`Vid_(?P<year>[0-9]{4})(?P<month>[0-9]{2})(?P<day>[0-9]{2})_(?P<hour>[0-9]{2})(?P<minute>[0-9]{2})(?P<second>[0-9]{2})_(?P<frame>[0-9]{3})\.mp4`)

// ImageGroupBy groups shots taken in the same second: a burst leaves the
// timestamp fields identical and only the frame counter differs.
var ImageGroupBy = []string{"year", "month", "day", "hour", "minute", "second"}

// VideoGroupBy mirrors ImageGroupBy for videos.
var VideoGroupBy = ImageGroupBy

// ImageOrderBy orders burst members by their frame counter.
const ImageOrderBy = "frame"

// VideoOrderBy mirrors ImageOrderBy for videos.
const VideoOrderBy = ImageOrderBy
