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

package bpmn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkgator/BPMN-to-TEXT/bpmn"
)

const linearProcess = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" xmlns:dc="http://www.omg.org/spec/DD/20100524/DC" xmlns:di="http://www.omg.org/spec/DD/20100524/DI" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo Linear" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:task id="Task_1" name="Primeira Tarefa">
      <bpmn:incoming>Flow_1</bpmn:incoming>
      <bpmn:outgoing>Flow_2</bpmn:outgoing>
    </bpmn:task>
    <bpmn:serviceTask id="Task_2" name="Segunda Tarefa">
      <bpmn:incoming>Flow_2</bpmn:incoming>
      <bpmn:outgoing>Flow_3</bpmn:outgoing>
    </bpmn:serviceTask>
    <bpmn:endEvent id="End_1" name="Fim">
      <bpmn:incoming>Flow_3</bpmn:incoming>
    </bpmn:endEvent>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_2" sourceRef="Task_1" targetRef="Task_2" />
    <bpmn:sequenceFlow id="Flow_3" sourceRef="Task_2" targetRef="End_1" />
  </bpmn:process>
</bpmn:definitions>`

func TestLoadLinearProcess(t *testing.T) {
	defs, err := bpmn.Load([]byte(linearProcess))
	require.NoError(t, err)
	require.Len(t, defs.Processes, 1)

	proc := defs.Processes[0]
	assert.Equal(t, "Processo Linear", proc.Name)
	require.Len(t, proc.StartEvents, 1)
	assert.Equal(t, "Start_1", proc.StartEvents[0])

	require.Contains(t, proc.Nodes, "Task_1")
	assert.Equal(t, bpmn.CategoryTask, proc.Nodes["Task_1"].Category)
	assert.Equal(t, bpmn.TaskGeneric, proc.Nodes["Task_1"].TaskKind)
	assert.Equal(t, bpmn.TaskService, proc.Nodes["Task_2"].TaskKind)

	assert.Equal(t, []string{"Flow_1"}, proc.Outgoing["Start_1"])
	assert.Equal(t, []string{"Flow_3"}, proc.Outgoing["Task_2"])
}

func TestLoadNoProcess(t *testing.T) {
	_, err := bpmn.Load([]byte(`<?xml version="1.0"?><bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1"></bpmn:definitions>`))
	assert.ErrorIs(t, err, bpmn.ErrNoProcess)
}

const linkEventProcess = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo com Link" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:task id="Task_1" name="Tarefa Antes do Link">
      <bpmn:incoming>Flow_1</bpmn:incoming>
    </bpmn:task>
    <bpmn:intermediateThrowEvent id="LinkThrow_1" name="Continua em B">
      <bpmn:linkEventDefinition id="LinkDef_1" name="B" />
    </bpmn:intermediateThrowEvent>
    <bpmn:intermediateCatchEvent id="LinkCatch_1" name="Continua de A">
      <bpmn:linkEventDefinition id="LinkDef_2" name="B" />
      <bpmn:outgoing>Flow_2</bpmn:outgoing>
    </bpmn:intermediateCatchEvent>
    <bpmn:task id="Task_2" name="Tarefa Depois do Link">
      <bpmn:incoming>Flow_2</bpmn:incoming>
    </bpmn:task>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_2" sourceRef="LinkCatch_1" targetRef="Task_2" />
  </bpmn:process>
</bpmn:definitions>`

func TestLinkEventRepairWiresDeadThrowToCatch(t *testing.T) {
	defs, err := bpmn.Load([]byte(linkEventProcess))
	require.NoError(t, err)
	proc := defs.Processes[0]

	assert.Equal(t, bpmn.CatchThrowThrow, proc.Nodes["LinkThrow_1"].CatchThrow)
	assert.Equal(t, bpmn.CatchThrowCatch, proc.Nodes["LinkCatch_1"].CatchThrow)

	// LinkThrow_1 has no outgoing flow in the source document, so the
	// throw is "dead" and should have been wired directly to the catch;
	// Task_1 is not part of the link and keeps no outgoing flow.
	assert.Empty(t, proc.Outgoing["Task_1"])

	outs := proc.Outgoing["LinkThrow_1"]
	require.Len(t, outs, 1)
	assert.Equal(t, "LinkCatch_1", proc.Flows[outs[0]].Target)
}

const laneProcess = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI" xmlns:dc="http://www.omg.org/spec/DD/20100524/DC" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo com Raias" isExecutable="true">
    <bpmn:laneSet id="LaneSet_1">
      <bpmn:lane id="Lane_Explicit" name="Equipe A">
        <bpmn:flowNodeRef>Task_Explicit</bpmn:flowNodeRef>
      </bpmn:lane>
    </bpmn:laneSet>
    <bpmn:task id="Task_Explicit" name="Tarefa Mapeada" />
    <bpmn:task id="Task_Geometric" name="Tarefa Geometrica" />
  </bpmn:process>
  <bpmndi:BPMNDiagram id="Diagram_1">
    <bpmndi:BPMNPlane id="Plane_1" bpmnElement="Process_1">
      <bpmndi:BPMNShape id="Lane_Explicit_di" bpmnElement="Lane_Explicit">
        <dc:Bounds x="0" y="0" width="100" height="100" />
      </bpmndi:BPMNShape>
      <bpmndi:BPMNShape id="Task_Geometric_di" bpmnElement="Task_Geometric">
        <dc:Bounds x="10" y="10" width="20" height="20" />
      </bpmndi:BPMNShape>
    </bpmndi:BPMNPlane>
  </bpmndi:BPMNDiagram>
</bpmn:definitions>`

func TestActorResolvesExplicitAndGeometricLanes(t *testing.T) {
	defs, err := bpmn.Load([]byte(laneProcess))
	require.NoError(t, err)

	assert.Equal(t, "Equipe A", defs.Actor("Task_Explicit"))
	assert.Equal(t, "Equipe A", defs.Actor("Task_Geometric"))
	assert.Equal(t, bpmn.UnresolvedActor, defs.Actor("Task_Unknown"))
}
