package compiler

import (
	"context"
	"strings"

	"github.com/viant/stepflow/model/asl"
	"github.com/viant/stepflow/model/graph"
)

func (c *Compiler) mapState(ctx context.Context, aMap *graph.Map) (*asl.State, error) {
	body, err := c.compileFlow(ctx, aMap.Body, "body")
	if err != nil {
		return nil, err
	}
	ret := &asl.State{
		Type:          asl.TypeMap,
		ItemProcessor: &asl.ItemProcessor{Document: *body, ProcessorConfig: &asl.ProcessorConfig{Mode: asl.ModeInline}},
		Assign:        aMap.Assign,
		Output:        aMap.Output,
		End:           aMap.End,
	}
	if ret.Next, err = c.resolve(ctx, aMap.Next, aMap.End); err != nil {
		return nil, err
	}
	if aMap.IsDistributed() {
		distribute(ret, aMap)
	}
	return ret, c.attach(ctx, ret, aMap.Policies())
}

// distribute adds processor, reader, writer and batching settings of a distributed map
func distribute(ret *asl.State, aMap *graph.Map) {
	executionType := aMap.ExecutionType
	if executionType == "" {
		executionType = asl.ExecutionTypeDefault
	}
	ret.ItemProcessor.ProcessorConfig = &asl.ProcessorConfig{
		Mode:          asl.ModeDistributed,
		ExecutionType: strings.ToUpper(executionType),
	}
	if reader := aMap.ItemReader; reader != nil {
		itemReader := &asl.ItemReader{
			Resource:     asl.ResourceS3GetObject,
			Arguments:    &asl.ObjectRef{Bucket: reader.Bucket, Key: reader.Key},
			ReaderConfig: &asl.ReaderConfig{InputType: strings.ToUpper(reader.Source)},
		}
		if reader.IsCSV() {
			config := itemReader.ReaderConfig
			config.CSVDelimiter = reader.Delimiter
			if reader.Headers != nil {
				config.CSVHeaderLocation = reader.Headers.Location
				config.CSVHeaders = reader.Headers.Titles
			}
			config.MaxItems = reader.MaxItems
		}
		ret.ItemReader = itemReader
	}
	if writer := aMap.ResultWriter; writer != nil {
		ret.ResultWriter = &asl.ResultWriter{
			Resource:   asl.ResourceS3PutObject,
			Parameters: &asl.ObjectRef{Bucket: writer.Bucket, Prefix: writer.Prefix},
		}
		if writer.Config != nil {
			ret.ResultWriter.WriterConfig = &asl.WriterConfig{
				OutputType:     writer.Config.OutputType,
				Transformation: writer.Config.Transformation,
			}
		}
	}
	if aMap.MaxItemsPerBatch != nil && *aMap.MaxItemsPerBatch > 0 {
		ret.ItemBatcher = &asl.ItemBatcher{MaxItemsPerBatch: *aMap.MaxItemsPerBatch}
	}
}
