package orchestrator

import "fmt"

const (
	jobDetailsSchema         = "JSON object with keys: company, position, location, salary"
	interviewQuestionsSchema = "Array of objects with question and answer keys"
	interviewQuestionCount   = 5
)

func tailorPrompt(resume, jobDescription string) string {
	return fmt.Sprintf(`You are an expert Resume Tailor. Rewrite the following RESUME to match the JOB DESCRIPTION.

RESUME:
%s

JOB DESCRIPTION:
%s

Output only the rewritten resume in Markdown format.`, resume, jobDescription)
}

func jobDetailsPrompt(description string) string {
	return fmt.Sprintf(`Extract the following details from the JOB DESCRIPTION.

JOB DESCRIPTION:
%s

Return JSON with keys: 'company', 'position', 'location', 'salary'.
If a field is not found, use "Unknown" or "".
For salary, provide a range if available.`, description)
}

func interviewPrompt(resume, jobDescription string) string {
	return fmt.Sprintf(`Generate %d likely interview questions and concise answers based on the candidate's RESUME and the JOB DESCRIPTION.

RESUME:
%s

JOB DESCRIPTION:
%s

Return the output as a JSON array of objects with 'question' and 'answer' keys.`, interviewQuestionCount, resume, jobDescription)
}
