package errors_test

import (
	"fmt"
	"io"

	"github.com/matzehuels/inspectreport/pkg/errors"
)

func ExampleWrap() {
	err := errors.Wrap(errors.ErrCodeReportFailed, io.ErrUnexpectedEOF, "render %s", "pdf")
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	fmt.Println(err)
	// Output:
	// REPORT_GENERATION_FAILED
	// render pdf
	// REPORT_GENERATION_FAILED: render pdf: unexpected EOF
}

func ExampleIs() {
	overflow := errors.New(errors.ErrCodeLayoutOverflow, "block too tall")
	err := errors.Fatal(overflow, "generate report")
	fmt.Println(errors.Is(err, errors.ErrCodeReportFailed), errors.Is(err, errors.ErrCodeLayoutOverflow))
	// Output: true true
}
