package inventory

// Collection is the ordered set of records owned by one session.
// Order is insertion order and is only meaningful for display.
type Collection struct {
	records  []*Record
	revision uint64
}

// NewCollection creates a collection holding the given records in order.
func NewCollection(records ...*Record) *Collection {
	c := &Collection{records: make([]*Record, 0, len(records))}
	c.records = append(c.records, records...)
	return c
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns the backing records in order.
// Callers must not append to or reslice the returned slice.
func (c *Collection) Records() []*Record {
	return c.records
}

// Revision changes every time the collection is mutated.
func (c *Collection) Revision() uint64 {
	return c.revision
}

// Add appends r. It does not check id uniqueness; callers that need
// unique ids look the id up first.
func (c *Collection) Add(r *Record) {
	c.records = append(c.records, r)
	c.revision++
}

// RemoveByID removes the first record whose id equals id and reports
// whether one was removed. Later records sharing the id are kept.
func (c *Collection) RemoveByID(id string) bool {
	for i, r := range c.records {
		if r.ID == id {
			copy(c.records[i:], c.records[i+1:])
			c.records[len(c.records)-1] = nil
			c.records = c.records[:len(c.records)-1]
			c.revision++
			return true
		}
	}
	return false
}

// Replace swaps the whole contents for records, as after a reload.
func (c *Collection) Replace(records []*Record) {
	c.records = append(c.records[:0:0], records...)
	c.revision++
}
