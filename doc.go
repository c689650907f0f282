// Package trajlog ties the codec layer to the time-series model: a
// TrajectoryLog owns the parsed header, the ordered sub-beam list, and the
// axis arena, and hands out borrowing views for everything else — snapshot
// rows, axis columns, per-sub-beam snapshot ranges, and the field-data
// projection the fluence engine consumes.
//
// Logs load from either on-disk format via Open (the codec is picked from
// the file's leading bytes) and save back through Save or SaveCompressed.
package trajlog
