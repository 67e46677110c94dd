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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"

	cfgpkg "github.com/Darkgator/BPMN-to-TEXT/config"
	"github.com/Darkgator/BPMN-to-TEXT/narrative"
)

var outDir string
var configPath string

func init() {
	flag.StringVar(&outDir, "output-dir", ".", "Specify a directory for output")
	flag.StringVar(&configPath, "config", "", "Path to an optional YAML render configuration")
}

func main() {
	flag.Set("stderrthreshold", "INFO")
	flag.Parse()
	inputFiles := flag.Args()

	dirInfo, err := os.Stat(outDir)
	if err != nil {
		glog.Fatalf("Error parsing argument %s: %s", outDir, err)
	}
	if !dirInfo.IsDir() {
		glog.Fatalf("Error %s is not a directory", outDir)
	}

	cfg := cfgpkg.Default()
	if configPath != "" {
		cfg, err = cfgpkg.Load(configPath)
		if err != nil {
			glog.Fatalf("loading config %s: %s", configPath, err)
		}
	}

	if len(inputFiles) == 0 {
		picked, err := pickBpmnFromFolder(".")
		if err != nil {
			glog.Fatalf("%s", err)
		}
		inputFiles = []string{picked}
	}

	for _, inputFile := range inputFiles {
		glog.Infof("Processing %s", inputFile)
		if _, err := os.Lstat(inputFile); err != nil {
			glog.Fatalf("arquivo BPMN nao encontrado: %s", inputFile)
		}

		text, err := narrative.RenderFromPathWithConfig(inputFile, cfg)
		if err != nil {
			glog.Errorf("rendering %s failed: %s", inputFile, err)
			continue
		}

		fmt.Println(text)

		base := filepath.Base(inputFile)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		outputFileName := fmt.Sprintf("%s/%s.txt", outDir, stem)
		if err := os.WriteFile(outputFileName, []byte(text), 0644); err != nil {
			glog.Errorf("writing file %s failed: %s", outputFileName, err)
			continue
		}
		glog.Infof("Wrote output to %s", outputFileName)
	}
}

// pickBpmnFromFolder lists the *.bpmn files under base and prompts the
// user to choose one by index, defaulting to the first on EOF.
func pickBpmnFromFolder(base string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(base, "*.bpmn"))
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", base, err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("nenhum arquivo .bpmn encontrado em %s", base)
	}

	fmt.Println("Selecione o BPMN:")
	for i, p := range matches {
		fmt.Printf("%d. %s\n", i+1, filepath.Base(p))
	}
	fmt.Print("Número do BPMN: ")

	scanner := bufio.NewScanner(os.Stdin)
	choice := "1"
	if scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			choice = line
		}
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(matches) {
		return "", fmt.Errorf("seleção inválida")
	}
	return matches[n-1], nil
}
