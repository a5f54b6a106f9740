package storage

// documents is the collection set shared by the map-backed providers.
// It is not safe for concurrent use; owners guard it with their own lock.
type documents map[string][]Record

func (d documents) findAll(collection string) []Record {
	records := d[collection]

	result := make([]Record, 0, len(records))
	for _, r := range records {
		result = append(result, r.Clone())
	}

	return result
}

func (d documents) indexOf(collection string, id any) int {
	key := NormalizeID(id)
	for i, r := range d[collection] {
		if NormalizeID(r.ID()) == key {
			return i
		}
	}
	return -1
}

func (d documents) findByID(collection string, id any) (Record, bool) {
	idx := d.indexOf(collection, id)
	if idx < 0 {
		return nil, false
	}

	return d[collection][idx].Clone(), true
}

func (d documents) create(collection string, data Record) Record {
	record := data.Clone()
	if record == nil {
		record = Record{}
	}
	record[FieldID] = nextID(d[collection])

	d[collection] = append(d[collection], record)

	return record.Clone()
}

func (d documents) update(collection string, id any, fields Record) (Record, bool) {
	idx := d.indexOf(collection, id)
	if idx < 0 {
		return nil, false
	}

	merged := d[collection][idx].Merge(fields)
	d[collection][idx] = merged

	return merged.Clone(), true
}

func (d documents) delete(collection string, id any) bool {
	idx := d.indexOf(collection, id)
	if idx < 0 {
		return false
	}

	records := d[collection]
	d[collection] = append(records[:idx:idx], records[idx+1:]...)

	return true
}
