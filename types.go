package kadmin

import "fmt"

// ConfigOperation is the action requested for a ConfigEntry in AlterConfigs
// (§3).
type ConfigOperation int

const (
	ConfigOpAdd ConfigOperation = iota
	ConfigOpSet
	ConfigOpDelete
)

// ConfigSource mirrors the wire enum DescribeConfigs v1 carries explicitly
// (§4.4).
type ConfigSource int

const (
	SourceUnknown ConfigSource = iota
	SourceDynamicTopic
	SourceDynamicBroker
	SourceStaticBroker
	SourceDefaultConfig
	SourceDynamicDefaultBroker
)

// ConfigEntry is one configuration key/value, with the describe-side
// metadata DescribeConfigs additionally populates (§3, §4.4).
type ConfigEntry struct {
	Name      string
	Value     *string
	Operation ConfigOperation

	Source      ConfigSource
	IsReadOnly  bool
	IsDefault   bool
	IsSensitive bool
	IsSynonym   bool
	Synonyms    []ConfigEntry
}

// synonymCap guards against a pathologically large synonym list in a
// DescribeConfigs v1 response (§4.4, §9 open question: heuristic, tunable).
const synonymCap = 100_000

// ConfigResourceType identifies what a ConfigResource names (§3).
type ConfigResourceType int

const (
	ResourceUnknown ConfigResourceType = iota
	ResourceAny
	ResourceTopic
	ResourceGroup
	ResourceBroker
)

func (t ConfigResourceType) String() string {
	switch t {
	case ResourceAny:
		return "ANY"
	case ResourceTopic:
		return "TOPIC"
	case ResourceGroup:
		return "GROUP"
	case ResourceBroker:
		return "BROKER"
	default:
		return "UNKNOWN"
	}
}

// knownResourceType reports whether the client recognizes t; an unknown
// resource type in a response is logged and skipped, not a parse failure
// (§4.4 rule 6).
func knownResourceType(t ConfigResourceType) bool {
	switch t {
	case ResourceAny, ResourceTopic, ResourceGroup, ResourceBroker:
		return true
	default:
		return false
	}
}

// ConfigResource names one configuration resource for Alter/DescribeConfigs
// (§3). Err/ErrStr are populated by the decoder; they are unused on input.
type ConfigResource struct {
	Type   ConfigResourceType
	Name   string
	Config []ConfigEntry
	Err    error
	ErrStr string
}

func resourceKey(t ConfigResourceType, name string) string {
	return fmt.Sprintf("%d:%s", t, name)
}

// NewTopic is the CreateTopics input value type (§3). Explicit replica
// assignment is mutually exclusive with a numeric replication factor: when
// ReplicaAssignment is set, a positive ReplicationFactor is rejected and
// PartitionCount is not checked; otherwise PartitionCount and
// ReplicationFactor are validated.
type NewTopic struct {
	Topic             string
	PartitionCount    int32 // 1..MAX when ReplicaAssignment is empty
	ReplicationFactor int16 // -1..MAX; -1 lets the broker choose
	ReplicaAssignment [][]int32
	Config            []ConfigEntry
}

// validate enforces the input constraints spec.md §3 documents.
func (t *NewTopic) validate() *AdminError {
	if t.Topic == "" {
		return newAdminError(ClassInvalidArg, "topic name must not be empty")
	}
	if len(t.ReplicaAssignment) > 0 {
		if t.ReplicationFactor > 0 {
			return newAdminError(ClassInvalidArg, "topic %q: explicit replica assignment is mutually exclusive with replication_factor", t.Topic)
		}
		if err := validatePartitionOrder(t.ReplicaAssignment); err != nil {
			return wrapAdminError(ClassInvalidArg, err, "topic %q: %s", t.Topic, err)
		}
	} else {
		if t.PartitionCount < 1 {
			return newAdminError(ClassInvalidArg, "topic %q: partition_count must be >= 1", t.Topic)
		}
		if t.ReplicationFactor < -1 {
			return newAdminError(ClassInvalidArg, "topic %q: replication_factor must be >= -1", t.Topic)
		}
	}
	return nil
}

// deepCopy returns an independent copy so the caller may free the original
// immediately after submission (§6, invariant 2).
func (t *NewTopic) deepCopy() NewTopic {
	cp := *t
	if t.ReplicaAssignment != nil {
		cp.ReplicaAssignment = make([][]int32, len(t.ReplicaAssignment))
		for i, r := range t.ReplicaAssignment {
			cp.ReplicaAssignment[i] = append([]int32(nil), r...)
		}
	}
	cp.Config = append([]ConfigEntry(nil), t.Config...)
	return cp
}

// validatePartitionOrder enforces "replica-assignment lists must be
// appended with strictly increasing partition index starting at 0" (§3).
// Since the API shape is an ordered slice (index == partition id), this
// reduces to rejecting empty per-partition assignments, but is kept as an
// explicit named check so the invariant reads as a rule, not an accident
// of the slice's shape.
func validatePartitionOrder(assignment [][]int32) error {
	for i, replicas := range assignment {
		if len(replicas) == 0 {
			return fmt.Errorf("partition %d has no replica assignment", i)
		}
	}
	return nil
}

// NewPartitions is the CreatePartitions input value type (§3).
type NewPartitions struct {
	Topic             string
	TotalCount        int32
	ReplicaAssignment [][]int32
}

func (p *NewPartitions) validate() *AdminError {
	if p.Topic == "" {
		return newAdminError(ClassInvalidArg, "topic name must not be empty")
	}
	if p.TotalCount < 1 {
		return newAdminError(ClassInvalidArg, "topic %q: total_count must be >= 1", p.Topic)
	}
	if len(p.ReplicaAssignment) > 0 {
		if err := validatePartitionOrder(p.ReplicaAssignment); err != nil {
			return wrapAdminError(ClassInvalidArg, err, "topic %q: %s", p.Topic, err)
		}
	}
	return nil
}

func (p *NewPartitions) deepCopy() NewPartitions {
	cp := *p
	if p.ReplicaAssignment != nil {
		cp.ReplicaAssignment = make([][]int32, len(p.ReplicaAssignment))
		for i, r := range p.ReplicaAssignment {
			cp.ReplicaAssignment[i] = append([]int32(nil), r...)
		}
	}
	return cp
}
