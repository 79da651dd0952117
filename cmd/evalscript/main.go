package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"able/evalscript/pkg/config"
	"able/evalscript/pkg/evaluator"
)

const cliToolVersion = "evalscript-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "validate":
		return runValidate(args[1:])
	case "run":
		return runEval(args[1:])
	default:
		return runEval(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: evalscript <run|validate> <script.js> [--policy policy.yml] [--context context.json]")
}

func runValidate(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", args[0], err)
		return 1
	}
	if err := evaluator.Validate(string(source), evaluator.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "ok")
	return 0
}

func runEval(args []string) int {
	scriptPath, policyPath, contextPath, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		return 1
	}

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", scriptPath, err)
		return 1
	}

	opts := evaluator.Options{}
	if policyPath != "" {
		opts, err = config.LoadPolicy(policyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	context := map[string]interface{}{}
	if contextPath != "" {
		context, err = loadContext(contextPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	result, evalErr := evaluator.Evaluate(string(source), context, opts)
	if evalErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", evalErr)
		return 1
	}

	out, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stdout, "%v\n", result)
		return 0
	}
	fmt.Fprintln(os.Stdout, string(out))
	return 0
}

func parseRunArgs(args []string) (script, policy, context string, err error) {
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--policy":
			if i+1 >= len(args) {
				return "", "", "", errors.New("--policy requires a path")
			}
			i++
			policy = args[i]
		case "--context":
			if i+1 >= len(args) {
				return "", "", "", errors.New("--context requires a path")
			}
			i++
			context = args[i]
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) == 0 {
		return "", "", "", errors.New("missing script path")
	}
	return positional[0], policy, context, nil
}

func loadContext(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context %s: %w", path, err)
	}
	var ctx map[string]interface{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse context %s: %w", path, err)
	}
	return ctx, nil
}
