/*
 * Copyright 2023 Cydarm Technologies Pty Ltd, https://cydarm.com/
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * 		http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package bpmn

// Category is the semantic category of a flow node.
type Category int

const (
	CategoryTask Category = iota
	CategorySubprocess
	CategoryGateway
	CategoryEvent
)

// TaskKind is the task sub-kind.
type TaskKind string

const (
	TaskGeneric TaskKind = "task"
	TaskUser    TaskKind = "userTask"
	TaskService TaskKind = "serviceTask"
	TaskSend    TaskKind = "sendTask"
	TaskReceive TaskKind = "receiveTask"
	TaskManual  TaskKind = "manualTask"
)

// SubprocessKind is the subprocess sub-kind.
type SubprocessKind string

const (
	SubprocessInline SubprocessKind = "subProcess"
	SubprocessCall   SubprocessKind = "callActivity"
)

// GatewayKind is the gateway sub-kind.
type GatewayKind string

const (
	GatewayExclusive  GatewayKind = "exclusiveGateway"
	GatewayParallel   GatewayKind = "parallelGateway"
	GatewayInclusive  GatewayKind = "inclusiveGateway"
	GatewayEventBased GatewayKind = "eventBasedGateway"
)

// EventPosition is where in a flow an event occurs.
type EventPosition string

const (
	EventStart              EventPosition = "startEvent"
	EventEnd                EventPosition = "endEvent"
	EventIntermediateThrow  EventPosition = "intermediateThrowEvent"
	EventIntermediateCatch  EventPosition = "intermediateCatchEvent"
	EventBoundary           EventPosition = "boundaryEvent"
)

// CatchThrow marks a link event as the catching or throwing half of a
// matched pair. Empty unless both halves of the named link exist.
type CatchThrow string

const (
	CatchThrowNone   CatchThrow = ""
	CatchThrowCatch  CatchThrow = "captura"
	CatchThrowThrow  CatchThrow = "disparo"
)

// elementSpec describes how one BPMN XML tag maps onto the tagged-variant
// Node model: its category and its Portuguese label. The sub-kind value is
// the tag name itself, which the collector converts into the typed
// sub-kind field matching the category, so Node never needs a runtime
// string "type" field.
type elementSpec struct {
	category Category
	label    string
}

// elementTable is keyed by the BPMN XML local tag name. Unknown tags are
// ignored by the collector.
var elementTable = map[string]elementSpec{
	"task":        {CategoryTask, "Atividade"},
	"userTask":    {CategoryTask, "Atividade (usuário)"},
	"serviceTask": {CategoryTask, "Atividade (serviço)"},
	"sendTask":    {CategoryTask, "Atividade (envio)"},
	"receiveTask": {CategoryTask, "Atividade (recebimento)"},
	"manualTask":  {CategoryTask, "Atividade (manual)"},

	"subProcess":   {CategorySubprocess, "Subprocesso"},
	"callActivity": {CategorySubprocess, "Subprocesso (call activity)"},

	"exclusiveGateway":  {CategoryGateway, "Gateway exclusivo"},
	"parallelGateway":   {CategoryGateway, "Gateway paralelo"},
	"inclusiveGateway":  {CategoryGateway, "Gateway inclusivo"},
	"eventBasedGateway": {CategoryGateway, "Gateway baseado em evento"},

	"startEvent":             {CategoryEvent, "Evento de início"},
	"endEvent":               {CategoryEvent, "Evento de fim"},
	"intermediateThrowEvent": {CategoryEvent, "Evento intermediário"},
	"intermediateCatchEvent": {CategoryEvent, "Evento intermediário"},
	"boundaryEvent":          {CategoryEvent, "Evento intermediário (fronteira)"},
}

// TaskKindLabel is the Portuguese label used in the "Tipo:" detail line.
var TaskKindLabel = map[TaskKind]string{
	TaskGeneric: "Sem tipo",
	TaskUser:    "Atividade de Usuário",
	TaskService: "Atividade de Serviço",
	TaskSend:    "Atividade de Envio",
	TaskReceive: "Atividade de Recebimento",
	TaskManual:  "Atividade Manual",
}

// Node is a BPMN flow element in tagged-variant form: Category selects
// which of the sub-kind fields is meaningful.
type Node struct {
	ID       string
	Name     string
	Category Category
	Label    string // Portuguese category label, from elementTable

	TaskKind       TaskKind
	SubprocessKind SubprocessKind
	GatewayKind    GatewayKind
	EventPosition  EventPosition

	EventFlavor string // e.g. "timer", "message", "link", "" if none
	LinkName    string // name attribute of the nested *EventDefinition, whatever its flavor; link matching reads it for link events
	CatchThrow  CatchThrow
}

// SequenceFlow is a directed edge between two nodes.
type SequenceFlow struct {
	ID        string
	Label     string
	Source    string
	Target    string
	Synthetic bool // true for flows created during graph repair
}

// ArtifactKind classifies an attached artifact.
type ArtifactKind int

const (
	ArtifactDocument ArtifactKind = iota
	ArtifactSystem
	ArtifactAnnotation
)

// Artifact is a non-flow element attached to a node.
type Artifact struct {
	Kind ArtifactKind
	Text string
}

// Lane is an organisational container grouping flow nodes by actor.
type Lane struct {
	ID    string
	Name  string // display name; "(sem ator)" if the lane itself was unnamed
	Nodes map[string]bool
}

// Participant binds a collaboration participant to a process.
type Participant struct {
	ID         string
	ProcessRef string
	Name       string
}

// MessageFlow is a cross-process directed link between two nodes.
type MessageFlow struct {
	ID     string
	Source string
	Target string
	Label  string
}

// Process is one BPMN <process> element, fully collected: its nodes, its
// sequence-flow adjacency (after graph repair), and its start events.
type Process struct {
	ID   string
	Name string

	Nodes    map[string]*Node
	Flows    map[string]*SequenceFlow
	Outgoing map[string][]string // node id -> ordered outgoing flow ids
	Incoming map[string][]string // node id -> ordered incoming flow ids

	StartEvents []string // node ids, document order
}

// rect is an axis-aligned rectangle from a BPMNShape's Bounds.
type rect struct {
	X, Y, W, H float64
}

func (r rect) area() float64 { return r.W * r.H }

func (r rect) centre() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func rectContains(r rect, x, y float64) bool {
	return r.X <= x && x <= r.X+r.W && r.Y <= y && y <= r.Y+r.H
}

func rectIntersectionArea(a, b rect) float64 {
	xOverlap := minF(a.X+a.W, b.X+b.W) - maxF(a.X, b.X)
	yOverlap := minF(a.Y+a.H, b.Y+b.H) - maxF(a.Y, b.Y)
	if xOverlap < 0 {
		xOverlap = 0
	}
	if yOverlap < 0 {
		yOverlap = 0
	}
	return xOverlap * yOverlap
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Definitions is a fully loaded, repaired, and enriched BPMN document:
// every process, every collaboration participant and message flow, and
// the global artifact-by-node map. Built once at load time and read-only
// afterwards.
type Definitions struct {
	Processes    []*Process
	Participants []*Participant
	MessageFlows []*MessageFlow

	// NodeLane maps node id -> resolved lane display name, per process
	// (populated by Load from collectLanes and inferLaneByDI, keyed across
	// every process since node ids are unique within a document).
	NodeLane map[string]string

	// ArtifactsByNode maps node id -> attached artifacts, and
	// OrphanAnnotations holds every annotation that never got attached.
	ArtifactsByNode    map[string][]Artifact
	OrphanAnnotations  []Artifact

	// NodeProcess maps node id -> owning process id.
	NodeProcess map[string]string
}

// Actor resolves the display lane name for a node, substituting
// UnresolvedActor when no lane (explicit or geometric) claims it.
func (d *Definitions) Actor(nodeID string) string {
	if name, ok := d.NodeLane[nodeID]; ok {
		return name
	}
	return UnresolvedActor
}
