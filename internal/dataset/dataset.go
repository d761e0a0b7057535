package dataset

// querySegment is a contiguous run of instances sharing the same qid.
type querySegment struct {
	Start, Length int
}

// DataSet is an ordered, immutable sequence of Instances. Input order is preserved: instances
// sharing a qid must already appear in contiguous runs (the svmlight reader keeps file order and
// does not regroup them; a qid that reappears after another qid starts a new query segment),
// queries are never reordered.
type DataSet struct {
	instances []Instance
	nfeatures int
	queries   []querySegment
}

// New builds a DataSet from instances already grouped into contiguous qid runs. nfeatures is
// derived as the max MaxFeatureID over all instances.
func New(instances []Instance) *DataSet {
	ds := &DataSet{instances: instances}
	ds.queries = groupByQueries(instances)
	for i := range instances {
		if mf := instances[i].MaxFeatureID(); mf > ds.nfeatures {
			ds.nfeatures = mf
		}
	}
	return ds
}

func groupByQueries(instances []Instance) []querySegment {
	if len(instances) == 0 {
		return nil
	}
	var segments []querySegment
	start := 0
	qid := instances[0].QID
	for i := 1; i < len(instances); i++ {
		if instances[i].QID != qid {
			segments = append(segments, querySegment{Start: start, Length: i - start})
			start = i
			qid = instances[i].QID
		}
	}
	segments = append(segments, querySegment{Start: start, Length: len(instances) - start})
	return segments
}

// Len returns the number of instances in the data set.
func (ds *DataSet) Len() int {
	return len(ds.instances)
}

// NumFeatures returns the highest feature id any instance carries a value for.
func (ds *DataSet) NumFeatures() int {
	return ds.nfeatures
}

// Instance returns the i-th instance.
func (ds *DataSet) Instance(i int) *Instance {
	return &ds.instances[i]
}

// Instances returns the underlying instance slice. Callers must not mutate it.
func (ds *DataSet) Instances() []Instance {
	return ds.instances
}

// NumQueries returns the number of contiguous qid runs.
func (ds *DataSet) NumQueries() int {
	return len(ds.queries)
}

// Query returns the (start, length) segment of the q-th query.
func (ds *DataSet) Query(q int) (start, length int) {
	seg := ds.queries[q]
	return seg.Start, seg.Length
}

// FeatureValues returns the value of feature fid for every instance, in dataset order. Used once
// at TrainingSet construction to build the per-feature ThresholdMap.
func (ds *DataSet) FeatureValues(fid int) []float64 {
	values := make([]float64, len(ds.instances))
	for i := range ds.instances {
		values[i] = ds.instances[i].Value(fid)
	}
	return values
}
