package cheatsheet

// pageTemplate is the outer shell of the cheatsheet. The section
// bodies are produced by renderer funcs so that events can nest
// recursively; the shell only decides the page chrome and ordering.
const pageTemplate = `<!doctype html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>

        body {
            /* More readable text */
            font-family: sans-serif;
            color: #222;
            max-width: 50em;
            margin: 0 auto;
        }

        /* The "visited" color for links is not very useful here */
        a, a:visited { color: rgb(0, 0, 238); }

        /* Many of our links contain underscores, which look weird when underlined */
        a { text-decoration: none; }
        a:hover, a:focus { text-decoration: underline; }

        h2 {
            font-size: medium;
        }

        /* Our notation for lists */
        .texts  { list-style: circle;  } /* RNG text alternatives */
        .random { list-style: circle;  } /* RNG event alternatives */
        .result { list-style: disc;    } /* Event outcomes */
        .choice { list-style: decimal; } /* Player choice */
        .fight  { list-style: square;  } /* Ship fight */

        ul.fight > li {
            margin-top: 10px;
            margin-bottom: 10px;
        }

        ul.texts {
            padding-left: 0px;
        }

        .indent {
            padding-left: 20px;
        }

        .blue {
            color: #10aee8;
        }

        .inner { display: none; }
        .showchildren .inner { display: block; }

    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
{{- range .Intro}}
    <p>{{.}}
{{- end}}

    <h2>Settings</h2>
    <ul style="list-style:none">
        <li><input type="checkbox" id="showinner"><label for="showinner">Show full text for event responses</label>
    </ul>

    <script>
        var toggle = document.getElementById('showinner')
        update_showhidden();
        toggle.addEventListener('change', update_showhidden);

        function update_showhidden() {
            if (toggle.checked) {
                document.body.className = 'showchildren';
            } else {
                document.body.className = '';
            }
        }
    </script>

<h1>Events</h1>
{{range .Sections}}{{renderSection .}}{{end}}
<h1>Fights</h1>
{{range .Ships}}{{renderShip .}}{{end}}
</body>
</html>
`
