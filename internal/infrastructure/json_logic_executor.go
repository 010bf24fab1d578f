package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Victor-armando18/menu-customizer/internal/interfaces"
	"github.com/diegoholiveira/jsonlogic/v3"
)

type JsonLogicExecutor struct {
	customOps map[string]func(args ...interface{}) interface{}
}

func NewJsonLogicExecutor() *JsonLogicExecutor {
	j := &JsonLogicExecutor{
		customOps: make(map[string]func(args ...interface{}) interface{}),
	}
	j.RegisterCustomOperator("round", CustomRound)
	j.RegisterCustomOperator("allocate", CustomAllocate)
	return j
}

func (j *JsonLogicExecutor) RegisterCustomOperator(name string, logic func(args ...interface{}) interface{}) {
	j.customOps[name] = logic
}

func (j *JsonLogicExecutor) Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (interface{}, error) {
	for opName, fn := range j.customOps {
		if args, ok := ruleData[opName]; ok {
			return j.handleManualEval(ctx, args, contextVars, fn)
		}
	}

	ruleJSON, err := json.Marshal(ruleData)
	if err != nil {
		return nil, fmt.Errorf("%w: encode rule: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	dataJSON, err := json.Marshal(contextVars)
	if err != nil {
		return nil, fmt.Errorf("%w: encode data: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	var resultBuffer bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &resultBuffer); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	resultStr := strings.TrimSpace(resultBuffer.String())
	if resultStr == "" || resultStr == "null" {
		return nil, nil
	}

	var res interface{}
	decoder := json.NewDecoder(strings.NewReader(resultStr))
	decoder.UseNumber()
	if err := decoder.Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	return finalizeValue(res), nil
}

// handleManualEval evaluates custom operator arguments (nested rules or vars) before calling fn.
func (j *JsonLogicExecutor) handleManualEval(ctx context.Context, args interface{}, data map[string]interface{}, fn func(args ...interface{}) interface{}) (interface{}, error) {
	list, ok := args.([]interface{})
	if !ok {
		list = []interface{}{args}
	}
	params := make([]interface{}, 0, len(list))
	for _, item := range list {
		if sub, isRule := item.(map[string]interface{}); isRule {
			if _, isVar := sub["var"]; !isVar {
				res, err := j.Execute(ctx, sub, data)
				if err != nil {
					return nil, err
				}
				params = append(params, res)
				continue
			}
		}
		params = append(params, resolveVar(item, data))
	}
	return fn(params...), nil
}

// resolveVar walks a dotted {"var": "a.b.c"} path through nested maps.
func resolveVar(arg interface{}, data map[string]interface{}) interface{} {
	m, ok := arg.(map[string]interface{})
	if !ok {
		return arg
	}
	path, ok := m["var"].(string)
	if !ok {
		return arg
	}
	var current interface{} = data
	for _, part := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = node[part]
	}
	return finalizeValue(current)
}

func finalizeValue(val interface{}) interface{} {
	if n, ok := val.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return val
}

func CustomRound(args ...interface{}) interface{} {
	if len(args) == 0 {
		return 0.0
	}
	val, _ := anyToFloat(args[0])
	precision := 0
	if len(args) > 1 {
		if p, ok := anyToFloat(args[1]); ok {
			precision = int(p)
		}
	}
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func CustomAllocate(args ...interface{}) interface{} {
	if len(args) < 2 {
		return 0.0
	}
	val, _ := anyToFloat(args[0])
	parts, _ := anyToFloat(args[1])
	if parts == 0 {
		return 0.0
	}
	return val / parts
}

func anyToFloat(i interface{}) (float64, bool) {
	switch v := i.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
