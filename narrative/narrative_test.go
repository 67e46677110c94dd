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

package narrative_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darkgator/BPMN-to-TEXT/narrative"
)

const linearBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo Linear" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:task id="Task_1" name="Primeira Tarefa">
      <bpmn:incoming>Flow_1</bpmn:incoming>
      <bpmn:outgoing>Flow_2</bpmn:outgoing>
    </bpmn:task>
    <bpmn:endEvent id="End_1" name="Fim">
      <bpmn:incoming>Flow_2</bpmn:incoming>
    </bpmn:endEvent>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_2" sourceRef="Task_1" targetRef="End_1" />
  </bpmn:process>
</bpmn:definitions>`

func TestRenderLinearProcess(t *testing.T) {
	text, err := narrative.Render([]byte(linearBPMN), "linear.bpmn")
	require.NoError(t, err)

	assert.Contains(t, text, "Titulo: Processo Linear")
	assert.Contains(t, text, "1. Evento de início: Início")
	assert.Contains(t, text, "2. Atividade: Primeira Tarefa")
	assert.Contains(t, text, "3. Evento de fim: Fim")
}

const exclusiveSplitBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Decisao" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:exclusiveGateway id="Gateway_1" name="Aprovado?">
      <bpmn:incoming>Flow_1</bpmn:incoming>
      <bpmn:outgoing>Flow_Yes</bpmn:outgoing>
      <bpmn:outgoing>Flow_No</bpmn:outgoing>
    </bpmn:exclusiveGateway>
    <bpmn:task id="Task_Yes" name="Processar Aprovação" />
    <bpmn:task id="Task_No" name="Registrar Rejeição" />
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Gateway_1" />
    <bpmn:sequenceFlow id="Flow_Yes" name="Sim" sourceRef="Gateway_1" targetRef="Task_Yes" />
    <bpmn:sequenceFlow id="Flow_No" name="Não" sourceRef="Gateway_1" targetRef="Task_No" />
  </bpmn:process>
</bpmn:definitions>`

func TestRenderExclusiveSplitUsesFlowLabelsAsBranches(t *testing.T) {
	text, err := narrative.Render([]byte(exclusiveSplitBPMN), "decisao.bpmn")
	require.NoError(t, err)

	assert.Contains(t, text, "Caso Sim:")
	assert.Contains(t, text, "Caso Não:")
	assert.Contains(t, text, "Processar Aprovação")
	assert.Contains(t, text, "Registrar Rejeição")
}

const parallelForkJoinBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Fork e Join" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:parallelGateway id="Fork_1">
      <bpmn:incoming>Flow_1</bpmn:incoming>
      <bpmn:outgoing>Flow_A</bpmn:outgoing>
      <bpmn:outgoing>Flow_B</bpmn:outgoing>
    </bpmn:parallelGateway>
    <bpmn:task id="Task_A" name="Caminho A">
      <bpmn:incoming>Flow_A</bpmn:incoming>
      <bpmn:outgoing>Flow_A2</bpmn:outgoing>
    </bpmn:task>
    <bpmn:task id="Task_B" name="Caminho B">
      <bpmn:incoming>Flow_B</bpmn:incoming>
      <bpmn:outgoing>Flow_B2</bpmn:outgoing>
    </bpmn:task>
    <bpmn:parallelGateway id="Join_1">
      <bpmn:incoming>Flow_A2</bpmn:incoming>
      <bpmn:incoming>Flow_B2</bpmn:incoming>
      <bpmn:outgoing>Flow_End</bpmn:outgoing>
    </bpmn:parallelGateway>
    <bpmn:endEvent id="End_1" name="Fim">
      <bpmn:incoming>Flow_End</bpmn:incoming>
    </bpmn:endEvent>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Fork_1" />
    <bpmn:sequenceFlow id="Flow_A" sourceRef="Fork_1" targetRef="Task_A" />
    <bpmn:sequenceFlow id="Flow_B" sourceRef="Fork_1" targetRef="Task_B" />
    <bpmn:sequenceFlow id="Flow_A2" sourceRef="Task_A" targetRef="Join_1" />
    <bpmn:sequenceFlow id="Flow_B2" sourceRef="Task_B" targetRef="Join_1" />
    <bpmn:sequenceFlow id="Flow_End" sourceRef="Join_1" targetRef="End_1" />
  </bpmn:process>
</bpmn:definitions>`

func TestRenderParallelForkAndJoin(t *testing.T) {
	text, err := narrative.Render([]byte(parallelForkJoinBPMN), "fork.bpmn")
	require.NoError(t, err)

	assert.Contains(t, text, "Caminho 01")
	assert.Contains(t, text, "Caminho A")
	assert.Contains(t, text, "Caminho B")
	assert.Contains(t, text, "Fim do Gateway Paralelo (convergência)")
}

const loopBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo com Loop" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:task id="Task_1" name="Verificar Status">
      <bpmn:incoming>Flow_1</bpmn:incoming>
      <bpmn:incoming>Flow_Retry</bpmn:incoming>
      <bpmn:outgoing>Flow_2</bpmn:outgoing>
    </bpmn:task>
    <bpmn:exclusiveGateway id="Gateway_1" name="Pronto?">
      <bpmn:incoming>Flow_2</bpmn:incoming>
      <bpmn:outgoing>Flow_Retry</bpmn:outgoing>
      <bpmn:outgoing>Flow_Done</bpmn:outgoing>
    </bpmn:exclusiveGateway>
    <bpmn:endEvent id="End_1" name="Fim">
      <bpmn:incoming>Flow_Done</bpmn:incoming>
    </bpmn:endEvent>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_2" sourceRef="Task_1" targetRef="Gateway_1" />
    <bpmn:sequenceFlow id="Flow_Retry" name="Não" sourceRef="Gateway_1" targetRef="Task_1" />
    <bpmn:sequenceFlow id="Flow_Done" name="Sim" sourceRef="Gateway_1" targetRef="End_1" />
  </bpmn:process>
</bpmn:definitions>`

func TestRenderLoopDetection(t *testing.T) {
	text, err := narrative.Render([]byte(loopBPMN), "loop.bpmn")
	require.NoError(t, err)

	assert.Contains(t, text, "(retorna para 2)")
}

const orphanAnnotationBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="Definitions_1">
  <bpmn:process id="Process_1" name="Processo com Anotação" isExecutable="true">
    <bpmn:startEvent id="Start_1" name="Início">
      <bpmn:outgoing>Flow_1</bpmn:outgoing>
    </bpmn:startEvent>
    <bpmn:endEvent id="End_1" name="Fim">
      <bpmn:incoming>Flow_1</bpmn:incoming>
    </bpmn:endEvent>
    <bpmn:sequenceFlow id="Flow_1" sourceRef="Start_1" targetRef="End_1" />
    <bpmn:textAnnotation id="Annotation_1">
      <bpmn:text>Observação solta, nunca associada a nenhum nó.</bpmn:text>
    </bpmn:textAnnotation>
  </bpmn:process>
</bpmn:definitions>`

func TestRenderOrphanAnnotationSection(t *testing.T) {
	text, err := narrative.Render([]byte(orphanAnnotationBPMN), "orfao.bpmn")
	require.NoError(t, err)

	assert.Contains(t, text, "Anotações não ligadas a elementos:")
	assert.Contains(t, text, "Observação solta, nunca associada a nenhum nó.")
}

func TestRenderTrimsTrailingWhitespace(t *testing.T) {
	text, err := narrative.Render([]byte(linearBPMN), "linear.bpmn")
	require.NoError(t, err)
	assert.False(t, strings.HasSuffix(text, "\n\n"))
}
