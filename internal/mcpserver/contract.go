package mcpserver

// WorkoutFormatContract describes the workout record format and the rules
// log_workout applies, for LLM consumers of the tools.
const WorkoutFormatContract = `# Rowing Workout Format

The log is an ordered list of workouts, newest first by insertion (not by date).
It is stored as one JSON array; every change rewrites the whole array.

## Record

` + "```" + `json
{
  "id": "5f0c6a1e-...",      // generated, never supplied by the caller
  "date": "2024-05-01",      // YYYY-MM-DD
  "type": "Erg",             // Erg | Berg | Run | Other
  "minutes": 30,             // whole minutes
  "seconds": 15,
  "meters": 7500,
  "split": 0,                // not derived yet, always 0
  "watts": 210,
  "pace": 118,
  "stroke_rate": 24,
  "notes": "3x10' at 20spm"
}
` + "```" + `

## log_workout rules

1. ` + "`minutes`" + ` is required and must be a number greater than zero; it is
   rounded to the nearest whole minute.
2. ` + "`date`" + ` defaults to today when omitted. It must not be empty.
3. ` + "`type`" + ` defaults to Erg.
4. Other numeric fields that are missing or not numbers are stored as 0.
5. ` + "`notes`" + ` is stored verbatim.

A call that breaks rule 1 or 2 adds nothing and returns a tool error.
`
