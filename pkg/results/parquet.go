package results

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet"
	"github.com/apache/arrow/go/v13/parquet/file"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// trajectorySchema is the column layout of exported trajectory files: one row
// per recorded fitness sample.
var trajectorySchema = arrow.NewSchema([]arrow.Field{
	{Name: "run_id", Type: arrow.BinaryTypes.String},
	{Name: "evaluations", Type: arrow.PrimitiveTypes.Int64},
	{Name: "y", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteTrajectory writes one run's fitness trajectory to a Parquet file.
func WriteTrajectory(path string, rec RunRecord) error {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, trajectorySchema)
	defer builder.Release()

	runID := builder.Field(0).(*array.StringBuilder)
	evaluations := builder.Field(1).(*array.Int64Builder)
	y := builder.Field(2).(*array.Float64Builder)
	for _, sample := range rec.Trajectory {
		runID.Append(rec.ID)
		evaluations.Append(int64(sample.Evaluations))
		y.Append(sample.Y)
	}

	record := builder.NewRecord()
	defer record.Release()

	f, err := os.Create(path)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.ExportFailed, "failed to create trajectory file"),
			errors.Fields{"path": path},
		)
	}
	defer f.Close()

	writer, err := pqarrow.NewFileWriter(trajectorySchema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return errors.Wrap(err, errors.ExportFailed, "failed to create parquet writer")
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		return errors.WithFields(
			errors.Wrap(err, errors.ExportFailed, "failed to write trajectory"),
			errors.Fields{"path": path},
		)
	}
	if err := writer.Close(); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.ExportFailed, "failed to finalize trajectory file"),
			errors.Fields{"path": path},
		)
	}
	return nil
}

// ExportTrajectories writes every run's recorded trajectory into dir as
// "<run id>.parquet", creating dir if needed. Runs without recorded samples
// are skipped. Returns the paths written.
func ExportTrajectories(dir string, recs []RunRecord) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ExportFailed, "failed to create trajectory directory"),
			errors.Fields{"dir": dir},
		)
	}

	var paths []string
	for _, rec := range recs {
		if len(rec.Trajectory) == 0 {
			continue
		}
		path := filepath.Join(dir, rec.ID+".parquet")
		if err := WriteTrajectory(path, rec); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadTrajectory loads a trajectory file written by WriteTrajectory and
// returns the run id together with the recorded samples.
func ReadTrajectory(path string) (string, []core.FitnessRecord, error) {
	reader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return "", nil, errors.WithFields(
			errors.Wrap(err, errors.ExportFailed, "failed to open trajectory file"),
			errors.Fields{"path": path},
		)
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ExportFailed, "failed to create parquet reader")
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ExportFailed, "failed to read trajectory table")
	}
	defer table.Release()

	schema := table.Schema()
	runIDIndices := schema.FieldIndices("run_id")
	evalIndices := schema.FieldIndices("evaluations")
	yIndices := schema.FieldIndices("y")
	if len(runIDIndices) == 0 || len(evalIndices) == 0 || len(yIndices) == 0 {
		return "", nil, errors.WithFields(
			errors.New(errors.ExportFailed, "trajectory file is missing required columns"),
			errors.Fields{"path": path},
		)
	}

	idCol := table.Column(runIDIndices[0]).Data()
	evalCol := table.Column(evalIndices[0]).Data()
	yCol := table.Column(yIndices[0]).Data()

	var (
		runID   string
		samples []core.FitnessRecord
	)
	for c, chunk := range evalCol.Chunks() {
		evalArr := chunk.(*array.Int64)
		yArr := yCol.Chunks()[c].(*array.Float64)
		idArr := idCol.Chunks()[c].(*array.String)
		for i := 0; i < evalArr.Len(); i++ {
			if runID == "" {
				runID = idArr.Value(i)
			}
			samples = append(samples, core.FitnessRecord{
				Evaluations: int(evalArr.Value(i)),
				Y:           yArr.Value(i),
			})
		}
	}

	return runID, samples, nil
}
